package recipelab

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/blutspende/recipelab/config"
	"github.com/blutspende/recipelab/db"
	"github.com/blutspende/recipelab/middleware"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type GinApi interface {
	// Run serves until ctx is cancelled, then shuts the server down gracefully.
	Run(ctx context.Context) error
	Handler() http.Handler
}

type api struct {
	config        *config.Configuration
	engine        *gin.Engine
	recipeService RecipeService
	logService    LogService
	dbConn        db.DbConnector
}

func (api *api) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", api.config.APIPort),
		Handler:           api.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Msgf(ApiStartMsg, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Error().Err(err).Msg(ApiFailedToStartMsg)
			return errors.Wrap(err, ApiFailedToStartMsg)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(api.config.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return errors.Wrap(err, "shutdown api server failed")
	}
	log.Info().Msg(ApiEndedGracefullyMsg)
	return nil
}

func (api *api) Handler() http.Handler {
	return api.engine
}

func NewAPI(config *config.Configuration, recipeService RecipeService, logService LogService, dbConn db.DbConnector) GinApi {
	return newAPI(gin.New(), config, recipeService, logService, dbConn)
}

func newAPI(engine *gin.Engine, config *config.Configuration, recipeService RecipeService, logService LogService, dbConn db.DbConnector) GinApi {
	if config.LogLevel <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.AccessLog())

	api := api{
		config:        config,
		engine:        engine,
		recipeService: recipeService,
		logService:    logService,
		dbConn:        dbConn,
	}

	corsMiddleWare := middleware.CreateCorsMiddleware(config)
	engine.Use(corsMiddleWare)

	root := engine.Group("")
	root.GET("/health", api.GetHealth)
	root.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1Group := root.Group("/api/v1")
	if config.RequestTimeoutSeconds > 0 {
		v1Group.Use(middleware.Timeout(time.Duration(config.RequestTimeoutSeconds) * time.Second))
	}

	recipesGroup := v1Group.Group("/recipes")
	{
		recipesGroup.POST("", api.CreateRecipe)
		recipesGroup.GET("", api.GetRecipes)
		recipesGroup.GET("/:id", api.GetRecipeByID)
		recipesGroup.PUT("/:id", api.UpdateRecipe)
		recipesGroup.DELETE("/:id", api.DeleteRecipe)
	}

	logsGroup := v1Group.Group("/logs")
	{
		logsGroup.POST("", api.CreateLog)
		logsGroup.GET("", api.GetLogs)
		logsGroup.GET("/:id", api.GetLogByID)
		logsGroup.PUT("/:id", api.UpdateLog)
		logsGroup.DELETE("/:id", api.DeleteLog)
	}

	// Development-option enables debugger, this can have side-effects
	if api.config.Development {
		debug := root.Group("/debug/pprof")
		{
			debug.GET("/", gin.WrapF(pprof.Index))
			debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			debug.GET("/profile", gin.WrapF(pprof.Profile))
			debug.GET("/symbol", gin.WrapF(pprof.Symbol))
			debug.GET("/trace", gin.WrapF(pprof.Trace))
			debug.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
			debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
			debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
			debug.POST("/symbol", gin.WrapF(pprof.Symbol))
		}
	}

	return &api
}

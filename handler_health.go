package recipelab

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BuildVersion - will be filled at build process in pipeline
var BuildVersion string

// ServiceName - will be filled at build process in pipeline
var ServiceName = "recipelab"

const (
	healthStatusRunning  = "running"
	healthStatusDegraded = "degraded"
)

type healthCheck struct {
	Service      string   `json:"service"`
	Status       string   `json:"status"`
	Database     string   `json:"database"`
	ApiVersion   []string `json:"apiVersion"`
	BuildVersion string   `json:"buildVersion"`
	MemStats     memStats `json:"memStats"`
}

type memStats struct {
	Alloc              string `json:"alloc"`
	TotalAlloc         string `json:"totalAlloc"`
	Sys                string `json:"sys"`
	HeapInUse          string `json:"heapInUse"`
	StackInUse         string `json:"stackInUse"`
	NumberOfGoRoutines int    `json:"numberOfGoRoutines"`
}

// GetHealth reports 503 while the database cannot be reached.
func (api *api) GetHealth(c *gin.Context) {
	info := healthCheck{
		Service:      ServiceName,
		Status:       healthStatusRunning,
		Database:     "up",
		ApiVersion:   []string{"v1"},
		BuildVersion: BuildVersion,
	}

	status := http.StatusOK
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if api.dbConn == nil {
		info.Status = healthStatusDegraded
		info.Database = "unavailable"
		status = http.StatusServiceUnavailable
	} else if err := api.dbConn.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("database ping failed")
		info.Status = healthStatusDegraded
		info.Database = "down"
		status = http.StatusServiceUnavailable
	}

	var memStat runtime.MemStats
	runtime.ReadMemStats(&memStat)

	info.MemStats.Alloc = fmt.Sprintf("%v MiB", memStat.Alloc/1024/1024)
	info.MemStats.TotalAlloc = fmt.Sprintf("%v MiB", memStat.TotalAlloc/1024/1024)
	info.MemStats.Sys = fmt.Sprintf("%v MiB", memStat.Sys/1024/1024)
	info.MemStats.HeapInUse = fmt.Sprintf("%v MiB", memStat.HeapInuse/1024/1024)
	info.MemStats.StackInUse = fmt.Sprintf("%v MiB", memStat.StackInuse/1024/1024)
	info.MemStats.NumberOfGoRoutines = runtime.NumGoroutine()

	c.JSON(status, info)
}

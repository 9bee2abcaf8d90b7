package clients

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/blutspende/recipelab/config"
	"github.com/blutspende/recipelab/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func NewRestyClient(ctx context.Context, configuration *config.Configuration) *resty.Client {
	client := resty.New().
		OnBeforeRequest(configureRequest(ctx, configuration))

	if configuration.RequestTimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(configuration.RequestTimeoutSeconds) * time.Second)
	}
	if configuration.Development {
		client = client.SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})
	}

	return client
}

func configureRequest(ctx context.Context, configuration *config.Configuration) resty.RequestMiddleware {
	return func(client *resty.Client, request *resty.Request) error {
		request.SetContext(ctx)
		if request.Header.Get(middleware.RequestIDHeader) == "" {
			request.SetHeader(middleware.RequestIDHeader, uuid.New().String())
		}
		if configuration.LogLevel <= zerolog.DebugLevel {
			request.EnableTrace()
		}
		return nil
	}
}

package db

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var DatabaseUp = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "recipelab_database_up",
	Help: "1 while the last database ping succeeded, 0 otherwise.",
})

// WatchConnection pings the database every interval and publishes the result
// in DatabaseUp until ctx is done. Only changes of the state are logged.
func WatchConnection(ctx context.Context, dbConn DbConnector, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	up := ping(ctx, dbConn, interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current := ping(ctx, dbConn, interval)
			if current == up {
				continue
			}
			up = current
			if up {
				log.Info().Msg("database connection restored")
			} else {
				log.Warn().Msg(MsgDbConnectionNotAvailable)
			}
		}
	}
}

func ping(ctx context.Context, dbConn DbConnector, timeout time.Duration) bool {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := dbConn.Ping(pingCtx); err != nil {
		log.Debug().Err(err).Msg("database ping failed")
		DatabaseUp.Set(0)
		return false
	}
	DatabaseUp.Set(1)
	return true
}

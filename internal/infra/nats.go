package infra

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/app/appconfig"
)

// NATS connects to the change-event bus. It returns a nil *nats.Conn when cloud sync is disabled.
func NATS(conf *appconfig.Config) (*nats.Conn, error) {
	if !conf.CloudSyncEnabled {
		log.Warn().Msg("infra: nats: cloud sync is disabled, skipping event bus connection")
		return nil, nil
	}

	errorHandler := func(conn *nats.Conn, sub *nats.Subscription, err error) {
		evt := log.Error().
			Str("evt.name", "nats.error").
			Err(err).
			Str("conn.url", conn.ConnectedUrlRedacted())
		if sub != nil {
			evt = evt.Str("sub.subject", sub.Subject)
		}
		evt.Msg("nats error")
	}

	nc, err := nats.Connect(conf.NatsURL,
		nats.Name("yardboard"),
		nats.PingInterval(time.Second*20),
		nats.MaxReconnects(-1),
		nats.ErrorHandler(errorHandler),
	)
	if err != nil {
		log.Error().Err(err).Msg("infra: nats: failed to connect to NATS")
		return nil, err
	}

	return nc, nil
}

// Package app wires configuration into the stores, clients and step
// dependencies shared by the CLI and the form gateway.
package app

import (
	"context"
	"fmt"

	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/events"
	"github.com/laporinfra/laporinfra/internal/geo"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/internal/report"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/internal/submission"
	"github.com/laporinfra/laporinfra/pkg/config"
	"github.com/laporinfra/laporinfra/pkg/database"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"github.com/laporinfra/laporinfra/pkg/messaging"
	"github.com/paulmach/orb"
)

// Store is an opened session store. DB is nil for the memory driver.
type Store struct {
	session.Store
	DB *database.DB
}

// Close releases the database, if any
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// OpenStore opens the session store selected by cfg and runs its migration
func OpenStore(ctx context.Context, cfg *config.StoreConfig, log *logger.Logger) (*Store, error) {
	if cfg.Driver == config.StoreMemory {
		log.Warn().Msg("using in-memory session store; identities are lost on restart")
		return &Store{Store: session.NewMemoryStore()}, nil
	}

	db, err := database.New(cfg, log)
	if err != nil {
		return nil, err
	}

	store := session.NewSQLStore(db, log)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate session store: %w", err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("session store ready")
	return &Store{Store: store, DB: db}, nil
}

// GalleryConfig turns the upload section into a gallery configuration
func GalleryConfig(cfg config.UploadConfig) intake.Config {
	policy, ok := intake.ParsePolicy(cfg.Policy)
	if !ok {
		policy = intake.PolicyRejectAll
	}
	return intake.Config{
		MaxFiles:      cfg.MaxFiles,
		Policy:        policy,
		ExtractGPS:    cfg.ExtractGPS,
		CameraEnabled: cfg.Camera,
		MaxFileSize:   cfg.MaxFileSize,
	}
}

// GeoHelper creates a helper centred on the configured default point
func GeoHelper(cfg config.GeoConfig, locator geo.Locator) *geo.Helper {
	center := orb.Point{cfg.DefaultLongitude, cfg.DefaultLatitude}
	return geo.NewHelper(locator, center, geo.Options{
		HighAccuracy: cfg.HighAccuracy,
		Timeout:      cfg.Timeout,
		MaximumAge:   cfg.MaximumAge,
	})
}

// Notifier connects to RabbitMQ when enabled. The connection is nil when
// events are disabled.
func Notifier(cfg *config.RabbitMQConfig, log *logger.Logger) (events.Notifier, *messaging.RabbitMQ, error) {
	if !cfg.Enabled {
		return events.Nop{}, nil, nil
	}

	rmq, err := messaging.New(cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	exchange := cfg.Exchange
	if exchange == "" {
		exchange = messaging.ExchangeReportEvents
	}
	pub, err := messaging.NewPublisher(rmq, exchange, "laporinfra", log)
	if err != nil {
		rmq.Close()
		return nil, nil, err
	}

	return events.NewRabbitNotifier(pub, log), rmq, nil
}

// Deps assembles the step dependencies for store
func Deps(cfg *config.Config, store session.Store, notifier events.Notifier, log *logger.Logger) report.Deps {
	return report.Deps{
		Store:          store,
		SessionKey:     cfg.Store.Key,
		Mapper:         enum.NewMapper(cfg.Mapping.AllowFallback, log),
		Client:         submission.NewClient(&cfg.API, log),
		Notifier:       notifier,
		Localizer:      i18n.NewLocalizer(cfg.Locale),
		MismatchMeters: cfg.Geo.PhotoMismatchMeters,
		Logger:         log,
	}
}

// Package daemon wires the store, the membership engine and the web service together.
package daemon

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pluserman/pluserman/internal/config"
	"github.com/pluserman/pluserman/internal/db/gateway"
	"github.com/pluserman/pluserman/internal/membership"
	"github.com/pluserman/pluserman/internal/web"
)

// ErrConfigNil is returned by New without configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	engine     *membership.Service
	webService *web.Service
}

// Start serves http until SIGINT or SIGTERM and closes the store afterwards.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

	go d.webService.WaitShutdown()

	err := d.webService.Start(addr)

	if closeErr := gateway.Close(d.db); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close database")
	}

	return err
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (d *Daemon, err error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := gateway.Open(cfg)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = gateway.Close(db)
		}
	}()

	engine, err := membership.New(db)
	if err != nil {
		return nil, err
	}

	if err = seed(cfg, engine); err != nil {
		return nil, errors.Wrap(err, "failed to seed database")
	}

	webService, err := web.New(cfg, engine)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create web service")
	}

	return &Daemon{
		cfg:        cfg,
		db:         db,
		engine:     engine,
		webService: webService,
	}, nil
}

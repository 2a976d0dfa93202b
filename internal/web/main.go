// Package web serves the membership engine over http.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/pluserman/pluserman/internal/config"
	accesslog "github.com/pluserman/pluserman/internal/logger/adapter/fiber"
	"github.com/pluserman/pluserman/internal/membership"
	"github.com/pluserman/pluserman/internal/web/handler"
	"github.com/pluserman/pluserman/internal/web/handler/group"
	"github.com/pluserman/pluserman/internal/web/handler/user"
)

const (
	// IndexBody is the response of the root path.
	IndexBody = "Hi."

	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"

	defaultAppName = "pluserman"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	engine       *membership.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error)

	go func() {
		err := s.App.Listen(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("fiber listen error")
		}

		doneFiber <- err
	}()

	return <-doneFiber // wait for fiber to stop
}

// Alive reports whether check alive requests are answered with 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the service down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// MarkDown makes check alive answer 503 from now on.
func (s *Service) MarkDown() {
	s.alive.Store(false)
}

// Shutdown fails check alive for the configured drain time and stops the http server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	s.MarkDown()

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// checkAlive answers load balancer probes.
func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, engine *membership.Service) (*Service, error) {
	if cfg == nil || engine == nil {
		return nil, handler.ErrNilDependency
	}

	appName := cfg.Title
	if appName == "" {
		appName = defaultAppName
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize:        8192,
			AppName:               appName,
			CaseSensitive:         true,
			Prefork:               false,
			Immutable:             true,
			UnescapePath:          true,
			DisableStartupMessage: !cfg.DevMode,
			ErrorHandler:          handler.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
	}))

	// init web service
	service := &Service{
		cfg:          cfg,
		App:          app,
		engine:       engine,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.SendString(IndexBody)
	})
	if cfg.Webserver.CheckAliveURI != "" {
		app.Get(cfg.Webserver.CheckAliveURI, service.checkAlive)
	}

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes)
	for _, h := range []handler.Service{&user.Handler, &group.Handler} {
		if err := h.Init(app, engine); err != nil {
			return nil, err
		}
	}

	return service, nil
}

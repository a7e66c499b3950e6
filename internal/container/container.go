package container

import (
	"fmt"
	"net/http"

	"go-label-verifier/internal/config"
	"go-label-verifier/internal/factory"
	"go-label-verifier/internal/logger"
	"go-label-verifier/internal/observer"
	"go-label-verifier/internal/repository"
	"go-label-verifier/internal/service"
	"go-label-verifier/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config  *config.Config
	metrics *observer.MetricsObserver
	service service.LabelVerificationService
	handler http.Handler
}

// NewContainer wires the dependency graph from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	engine, err := factory.NewOCREngine(factory.TesseractEngine, cfg)
	if err != nil {
		return nil, fmt.Errorf("create OCR engine: %w", err)
	}

	fetcher, err := factory.NewImageFetcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("create image fetcher: %w", err)
	}

	imageRepo := repository.NewLabelImageRepository(fetcher)
	metrics := observer.NewMetricsObserver()

	svc := service.NewLabelVerificationService(
		engine,
		imageRepo,
		service.Options{
			OCRTimeout:    cfg.OCRTimeout,
			MinTextLength: cfg.MinTextLength,
			MaxUploadSize: cfg.MaxUploadSize,
		},
		observer.NewLoggingObserver(logger.Logger),
		metrics,
	)

	handler := transport.NewHandler(svc, metrics, cfg)

	return &Container{
		config:  cfg,
		metrics: metrics,
		service: svc,
		handler: handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

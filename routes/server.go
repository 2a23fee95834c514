package routes

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/checkout"
	"github.com/junaidrashid-git/charm-studio-api/config"
	orderControllers "github.com/junaidrashid-git/charm-studio-api/controllers/order"
	"github.com/junaidrashid-git/charm-studio-api/layout"
	"github.com/junaidrashid-git/charm-studio-api/session"
)

// NewServer wires the services behind the routes from cfg.
func NewServer(db *gorm.DB, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	assets, err := catalog.NewAssetHost(cfg.CloudinaryURL)
	if err != nil {
		return nil, err
	}

	snaps := layout.NewSnapTable(nil)
	if cfg.SnapPointsFile != "" {
		if snaps, err = layout.LoadSnapTable(cfg.SnapPointsFile); err != nil {
			return nil, fmt.Errorf("snap points: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	provider := catalog.NewProvider(db, assets, snaps, logger)
	hub := orderControllers.NewHub(logger)
	orders := checkout.NewGormStore(db)
	svc := checkout.NewService(orders,
		checkout.WithNotifier(hub),
		checkout.WithMetrics(checkout.NewMetrics(reg)),
		checkout.WithLogger(logger),
	)

	return &Server{
		DB:          db,
		Logger:      logger,
		JWTSecret:   []byte(cfg.JWTSecret),
		AdminAPIKey: cfg.AdminAPIKey,
		Assets:      assets,
		Catalog:     provider,
		Workspace:   session.NewWorkspace(db, provider, logger, !cfg.DevMode),
		Orders:      orders,
		Checkout:    svc,
		Hub:         hub,
		Metrics:     reg,
	}, nil
}

// Package okuri assembles the funeral-flower order intake system for a
// host UI: the order form, the passcode-gated settings panel, and the
// notification dispatch pipeline behind the success screen. There is no
// server process and no CLI; the host drives the returned App.
package okuri

import (
	"context"

	"go.uber.org/zap"

	"github.com/okuri-dev/okuri/internal/app"
	"github.com/okuri-dev/okuri/internal/config"
	"github.com/okuri-dev/okuri/internal/dispatch"
	"github.com/okuri-dev/okuri/internal/logger"
	"github.com/okuri-dev/okuri/internal/lookup"
	"github.com/okuri-dev/okuri/internal/mailer"
	"github.com/okuri-dev/okuri/internal/message"
	"github.com/okuri-dev/okuri/internal/receipt"
	"github.com/okuri-dev/okuri/internal/settings"
)

// App is the top-level controller a host UI drives.
type App = app.App

// New wires the full system from the environment: settings from the local
// store, Gemini-backed message generation when an API key is present (static
// templates otherwise), EmailJS delivery, and headless-Chrome receipt
// rendering.
func New(ctx context.Context) *App {
	log := logger.New()
	cfg := config.Load()

	var remote message.Remote
	if cfg.GeminiAPIKey != "" {
		gemini, err := message.NewGemini(ctx, cfg.GeminiAPIKey, log)
		if err != nil {
			log.Warn("generative service unavailable, messages use templates", zap.Error(err))
		} else {
			remote = gemini
		}
	}

	rasterizer := receipt.NewChromeRasterizer(log)
	sequencer := dispatch.New(
		message.NewComposite(remote, log),
		mailer.NewEmailJS(cfg.EmailJSURL, log),
		rasterizer,
		log,
	)

	return app.New(app.Deps{
		Store:     settings.NewStore(cfg.SettingsPath, log),
		Resolver:  lookup.NewClient(cfg.ZipcloudURL, log),
		Sequencer: sequencer,
		Exporter:  receipt.NewExporter(rasterizer, cfg.DownloadDir, log),
		Logger:    log,
	})
}

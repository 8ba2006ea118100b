package receipt

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ChromeRasterizer renders HTML in a headless browser and screenshots it.
// Each call launches, renders, and tears down its own browser: receipts are
// produced at most once per order, so keeping a warm instance around buys
// nothing.
type ChromeRasterizer struct {
	logger *zap.Logger
}

func NewChromeRasterizer(logger *zap.Logger) *ChromeRasterizer {
	return &ChromeRasterizer{logger: logger}
}

func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			r.logger.Debug("failed to close browser", zap.Error(err))
		}
	}()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	page, err := browser.Page(proto.TargetCreateTarget{URL: dataURL})
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt page: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("receipt page did not load: %w", err)
	}

	png, err := page.Screenshot(true, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to capture receipt: %w", err)
	}
	return png, nil
}

// Package receipt renders the order confirmation document: a fixed HTML
// layout rasterized to an image, packaged into a single-page PDF named
// after the family.
package receipt

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/okuri-dev/okuri/internal/order"
)

// Rasterizer turns the rendered receipt view into a PNG image.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

var layout = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<style>
  body { width: 800px; background: #fff; color: #1f2937; padding: 48px;
         font-family: "Shippori Mincho", "Noto Serif JP", serif; }
  h1 { color: #db2777; text-align: center; border-bottom: 4px solid #db2777;
       padding-bottom: 24px; }
  .sub { color: #9ca3af; text-align: center; margin-bottom: 40px; }
  table { width: 100%; font-size: 20px; border-collapse: collapse; }
  th { width: 200px; text-align: left; color: #6b7280;
       border-bottom: 1px solid #f3f4f6; padding: 12px 0; }
  td { border-bottom: 1px solid #f3f4f6; padding: 12px 0; }
  .placard { color: #db2777; font-weight: bold; }
  .issued { margin-top: 80px; padding-top: 40px; border-top: 1px solid #e5e7eb;
            text-align: center; color: #9ca3af; }
</style>
</head>
<body>
  <h1>供花注文内容確認書</h1>
  <p class="sub">OKURI Flower Order System</p>
  <table>
    <tr><th>御家名</th><td>{{.FamilyName}} 家</td></tr>
    <tr><th>注文商品</th><td>{{.FlowerType}}</td></tr>
    <tr><th>葬儀場所</th><td>{{.FuneralLocation}}</td></tr>
    <tr><th>お通夜</th><td>{{.WakeDateTime}}</td></tr>
    <tr><th>葬儀告別式</th><td>{{.FuneralDateTime}}</td></tr>
    <tr><th>ご注文者様</th><td>{{.ContactName}} 様</td></tr>
    <tr><th>連絡先</th><td>{{.PhoneNumber}}</td></tr>
    <tr><th>振込名義人</th><td>{{.TransferName}}</td></tr>
    <tr><th>札名</th><td class="placard">{{.PlacardName}}</td></tr>
  </table>
  <p class="issued">発行: {{.CreatedAt.Format "2006/01/02 15:04"}}</p>
</body>
</html>`))

// RenderHTML produces the receipt document for one order.
func RenderHTML(o order.Order) (string, error) {
	var buf bytes.Buffer
	if err := layout.Execute(&buf, o); err != nil {
		return "", fmt.Errorf("failed to render receipt layout: %w", err)
	}
	return buf.String(), nil
}

// Filename is the deterministic download name for an order's receipt.
func Filename(o order.Order) string {
	return fmt.Sprintf("供花注文控え_%s家.pdf", o.FamilyName)
}

// Exporter packages the rasterized receipt into a single-page A4 PDF. The
// document is assembled fully in memory and written in one step, so a
// failure never leaves a partial file behind.
type Exporter struct {
	rasterizer Rasterizer
	dir        string
	logger     *zap.Logger
}

func NewExporter(rasterizer Rasterizer, dir string, logger *zap.Logger) *Exporter {
	return &Exporter{rasterizer: rasterizer, dir: dir, logger: logger}
}

// Export renders, rasterizes, and saves the receipt, returning the written
// file path.
func (e *Exporter) Export(ctx context.Context, o order.Order) (string, error) {
	html, err := RenderHTML(o)
	if err != nil {
		return "", err
	}

	png, err := e.rasterizer.Rasterize(ctx, html)
	if err != nil {
		return "", fmt.Errorf("failed to rasterize receipt: %w", err)
	}

	data, err := packagePDF(png)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, Filename(o))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save receipt: %w", err)
	}

	e.logger.Info("receipt exported", zap.String("order_id", o.ID), zap.String("path", path))
	return path, nil
}

func packagePDF(png []byte) ([]byte, error) {
	const pageWidthMM = 210.0 // A4 portrait

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader("receipt", opts, bytes.NewReader(png))
	if pdf.Err() {
		return nil, fmt.Errorf("failed to embed receipt image: %v", pdf.Error())
	}

	height := info.Height() * pageWidthMM / info.Width()
	pdf.ImageOptions("receipt", 0, 0, pageWidthMM, height, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

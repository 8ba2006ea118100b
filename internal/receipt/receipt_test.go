package receipt

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okuri-dev/okuri/internal/order"
)

func sampleOrder() order.Order {
	return order.Order{
		ID:              "order-1",
		FlowerType:      "白菊・洋花盛り (A)",
		FamilyName:      "山田",
		FuneralLocation: "青山斎場",
		WakeDateTime:    order.WakeNoneSentinel,
		FuneralDateTime: "2025-04-02T10:00",
		ContactName:     "田中 一郎",
		PhoneNumber:     "03-1234-5678",
		TransferName:    "タナカ イチロウ",
		PlacardName:     "株式会社○○",
		CreatedAt:       time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 10))))
	return buf.Bytes()
}

type stubRasterizer struct {
	png []byte
	err error
}

func (s *stubRasterizer) Rasterize(context.Context, string) ([]byte, error) {
	return s.png, s.err
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleOrder())
	require.NoError(t, err)

	assert.Contains(t, html, "供花注文内容確認書")
	assert.Contains(t, html, "山田 家")
	assert.Contains(t, html, "白菊・洋花盛り (A)")
	assert.Contains(t, html, order.WakeNoneSentinel)
	assert.Contains(t, html, "タナカ イチロウ")
	assert.Contains(t, html, "発行: 2025/04/01 12:00")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "供花注文控え_山田家.pdf", Filename(sampleOrder()))
}

func TestExport(t *testing.T) {
	t.Run("writes a single-page pdf", func(t *testing.T) {
		dir := t.TempDir()
		e := NewExporter(&stubRasterizer{png: tinyPNG(t)}, dir, zap.NewNop())

		path, err := e.Export(context.Background(), sampleOrder())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "供花注文控え_山田家.pdf"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("rasterizer failure leaves no file", func(t *testing.T) {
		dir := t.TempDir()
		e := NewExporter(&stubRasterizer{err: errors.New("no chrome")}, dir, zap.NewNop())

		_, err := e.Export(context.Background(), sampleOrder())
		require.Error(t, err)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})

	t.Run("garbage image leaves no file", func(t *testing.T) {
		dir := t.TempDir()
		e := NewExporter(&stubRasterizer{png: []byte("not a png")}, dir, zap.NewNop())

		_, err := e.Export(context.Background(), sampleOrder())
		require.Error(t, err)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}

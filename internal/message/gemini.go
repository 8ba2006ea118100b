package message

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/okuri-dev/okuri/internal/order"
)

const (
	geminiModel   = "gemini-3-flash-preview"
	geminiTimeout = 20 * time.Second

	customerSystemInstruction = "供花の受付担当として丁寧な返信文を作ってください。お悔やみの言葉は含めないでください。"
	adminSystemInstruction    = "受注情報を箇条書きでまとめてください。"
)

// Gemini asks the generative service for a natural-language rendering of
// the order. Callers are expected to wrap it in a Composite so that every
// failure degrades to the static templates.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGemini(ctx context.Context, apiKey string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: geminiModel, logger: logger}, nil
}

func (g *Gemini) CustomerMessage(ctx context.Context, o order.Order, price string) (string, error) {
	prompt := fmt.Sprintf(
		"供花の注文受付。文頭は「%s」。家名:%s、品物:%s %s、札名:%s、場所:%s、注文者:%s。電話確認、請求書郵送、振込手数料について含める。丁寧な敬語。",
		CustomerOpening, o.FamilyName, o.FlowerType, price, o.PlacardName, o.FuneralLocation, o.ContactName,
	)
	return g.generate(ctx, prompt, customerSystemInstruction)
}

func (g *Gemini) AdminMessage(ctx context.Context, o order.Order, price string) (string, error) {
	special := ""
	if o.HasSpecialChars {
		special = "特殊漢字あり"
	}
	prompt := fmt.Sprintf(
		"受注通知。家名:%s、場所:%s、札名:%s、注文者:%s、電話:%s。%s",
		o.FamilyName, o.FuneralLocation, o.PlacardName, o.ContactName, o.PhoneNumber, special,
	)
	return g.generate(ctx, prompt, adminSystemInstruction)
}

func (g *Gemini) generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generation returned empty text")
	}
	return text, nil
}

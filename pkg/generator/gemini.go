package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-canvas-kit/pkg/dataurl"
	"github.com/shouni/go-canvas-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// imageCore は GeminiCanvasGenerator が必要とする Core の機能の切り出しです。
type imageCore interface {
	executeRequest(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*ImageOutput, error)
	prepareImagePart(ctx context.Context, rawURL string) *genai.Part
}

// GeminiCanvasGenerator は、プロンプトから1枚の画像を生成する統合ジェネレーターです。
// 画面層へは data URL 形式で結果を引き渡します。
type GeminiCanvasGenerator struct {
	imgCore     imageCore
	model       string
	styleSuffix string // 全生成に共通で付加する画風（スタイル）の指示。空なら付加しない
}

// NewGeminiCanvasGenerator は GeminiCanvasGenerator を初期化します。
// core には通常 NewGeminiImageCore で構築した *GeminiImageCore を渡します。
func NewGeminiCanvasGenerator(core imageCore, model, styleSuffix string) (*GeminiCanvasGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (GeminiImageCore) is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &GeminiCanvasGenerator{
		imgCore:     core,
		model:       model,
		styleSuffix: styleSuffix,
	}, nil
}

// Generate はドメインのリクエストを Gemini API の形式に変換して実行します。
func (g *GeminiCanvasGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parts := []*genai.Part{{Text: g.buildPrompt(req.Prompt)}}

	// 参照画像があれば Core の機能を使って追加
	if req.ReferenceURL != "" {
		if imgPart := g.imgCore.prepareImagePart(ctx, req.ReferenceURL); imgPart != nil {
			parts = append(parts, imgPart)
		}
	}

	opts := gemini.GenerateOptions{
		AspectRatio: req.AspectRatio,
		Seed:        req.Seed,
	}

	slog.InfoContext(ctx, "画像生成リクエストを送信します", "model", g.model, "parts", len(parts))

	out, err := g.imgCore.executeRequest(ctx, g.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Gemini画像生成エラー: %w", err)
	}

	return &domain.ImageResponse{
		Data:     out.Data,
		MimeType: out.MimeType,
		UsedSeed: out.UsedSeed,
	}, nil
}

// GenerateDataURL はプロンプト1つを受け取り、生成画像を data URL 文字列で返します。
// 画面側の「generateImage(prompt) → dataURL」という契約の実装です。
func (g *GeminiCanvasGenerator) GenerateDataURL(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Generate(ctx, domain.GenerationRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	return dataurl.Encode(resp.MimeType, resp.Data), nil
}

// buildPrompt はユーザーのプロンプトに共通スタイルを合成します。
func (g *GeminiCanvasGenerator) buildPrompt(prompt string) string {
	if g.styleSuffix == "" {
		return prompt
	}
	return strings.TrimSpace(prompt) + ", " + g.styleSuffix
}

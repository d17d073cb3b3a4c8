package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-canvas-kit/internal/config"
	"github.com/shouni/go-canvas-kit/pkg/generator"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// NewAppContext は設定から共有コンポーネント一式を初期化して返します。
func NewAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	aiClient, err := InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	imgGen, err := InitializeCanvasGenerator(httpClient, aiClient, reader, cfg)
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		Generator:  imgGen,
		Writer:     writer,
		httpClient: httpClient,
	}, nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey: apiKey,
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeCanvasGenerator は CanvasGenerator を組み立てます。
// 参照画像のキャッシュには go-cache を使用します。
func InitializeCanvasGenerator(
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
	cfg *config.Config,
) (generator.CanvasGenerator, error) {
	imgCache := cache.New(30*time.Minute, 1*time.Hour)

	core, err := generator.NewGeminiImageCore(aiClient, reader, httpClient, imgCache, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := generator.NewGeminiCanvasGenerator(core, cfg.GeminiImageModel, cfg.ImagePromptSuffix)
	if err != nil {
		return nil, fmt.Errorf("GeminiCanvasGeneratorの初期化に失敗しました: %w", err)
	}

	return imgGen, nil
}

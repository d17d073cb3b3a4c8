package generator

import (
	"context"
	"time"

	"github.com/shouni/go-canvas-kit/pkg/domain"
)

// CanvasGenerator はビジネスロジック層が利用する統合窓口です。
// GenerateDataURL は画面層が期待する「プロンプト → data URL」の契約そのものです。
type CanvasGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error)
	GenerateDataURL(ctx context.Context, prompt string) (string, error)
}

// AssetManager は Gemini File API とのやり取りを担当します。
type AssetManager interface {
	UploadFile(ctx context.Context, fileURI string) (string, error)
	DeleteFile(ctx context.Context, fileURI string) error
}

// ImageCacher は、参照画像をキャッシュするためのインターフェースです。
// patrickmn/go-cache の *cache.Cache がそのまま満たします。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// HTTPClient は、HTTPリクエストを実行し、URLからデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

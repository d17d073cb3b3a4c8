// Package config はアプリケーションの環境設定と実行時オプションを束ねます。
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義
const (
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultOutputDir   = "output"
	DefaultCacheTTL    = 1 * time.Hour
	DefaultVariations  = 1

	// MaxVariations は一度の実行で生成できる画像数の上限です。
	MaxVariations = 8
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体です。
type Config struct {
	GeminiAPIKey      string
	GeminiImageModel  string
	ImagePromptSuffix string

	Options GenerateOptions
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返します。
// .env が存在しない場合は環境変数のみで動作します。
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		GeminiAPIKey:      envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiImageModel:  envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ImagePromptSuffix: envutil.GetEnv("IMAGE_PROMPT_SUFFIX", ""),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータです。
type GenerateOptions struct {
	// 生成入力関連
	Prompt       string // --prompt
	ReferenceURL string // --reference-url
	AspectRatio  string // --aspect-ratio
	Seed         int64  // --seed: 0以下で未指定（ランダム）

	// 出力設定
	OutputDir  string // --output-dir: 保存先（ローカル or gs://...）
	Variations int    // --count: 生成するバリエーション数

	// AI挙動・実行制御
	ImageModel  string        // --image-model
	HTTPTimeout time.Duration // --http-timeout
}

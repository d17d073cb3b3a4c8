package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/go-canvas-kit/internal/config"
)

// opts は各サブコマンドで共有される実行時パラメータです。
var opts config.GenerateOptions

var rootCmd = &cobra.Command{
	Use:               "canvas-kit",
	Short:             "プロンプトから画像を生成して引き渡すツールキット",
	PersistentPreRunE: preRunAppE,
	SilenceUsage:      true,
}

// init は、アプリケーション全般に適用されるグローバルフラグを定義します。
func init() {
	// --- 生成入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Prompt, "prompt", "p", "", "生成したい画像の説明文")
	rootCmd.PersistentFlags().StringVar(&opts.ReferenceURL, "reference-url", "", "構図を引き継ぐ参照画像のURL（http(s) or gs://）")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", "1:1", "生成画像のアスペクト比")
	rootCmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "再現用の固定シード（0でランダム）")

	// --- 出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "保存先ディレクトリ（ローカル or gs://...）")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "使用する Gemini 画像モデル名")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウト")

	rootCmd.AddCommand(screenCmd, generateCmd)
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行います。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせない
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須です")
	}
	return nil
}

// loadConfig は環境設定にコマンドライン引数の値を反映して返します。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.Options = opts
	if opts.ImageModel != "" {
		cfg.GeminiImageModel = opts.ImageModel
	}
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントです。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

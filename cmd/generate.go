package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-canvas-kit/internal/builder"
	"github.com/shouni/go-canvas-kit/internal/runner"
)

// generateCmd は、画面を介さずにプロンプトから画像を生成するサブコマンドです。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "プロンプトから画像を生成して保存する",
	Long: `指定したプロンプトで画像を生成し、出力ディレクトリへ保存します。
--count でバリエーションを複数生成でき、--seed 指定時は連番シードで再現性を保ちます。`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().IntVarP(&opts.Variations, "count", "c", 1, "生成するバリエーション数")
}

// generateCommand は、generate サブコマンドの実行ロジック本体です。
func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.Prompt == "" && len(args) > 0 {
		// フラグ未指定時は位置引数をプロンプトとして受け付ける
		opts.Prompt = args[0]
	}

	cfg := loadConfig()

	slog.Info("一括生成モードを起動します",
		"image_model", cfg.GeminiImageModel,
		"output_dir", cfg.Options.OutputDir,
		"count", cfg.Options.Variations)

	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗しました: %w", err)
	}

	genRunner, err := runner.NewGenerateRunner(appCtx.Generator, appCtx.Writer, cfg.Options)
	if err != nil {
		return err
	}

	saved, err := genRunner.Run(ctx)
	if err != nil {
		return err
	}

	for _, p := range saved {
		fmt.Println(p)
	}
	return nil
}

package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"path"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shouni/go-canvas-kit/internal/builder"
	"github.com/shouni/go-canvas-kit/internal/tui"
	"github.com/shouni/go-canvas-kit/pkg/domain"
	"github.com/shouni/go-canvas-kit/pkg/flow"
)

// screenCmd は、対話型のプロンプト画面を起動するサブコマンドです。
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "対話型のプロンプト画面を起動する",
	Long: `プロンプトを入力して画像を生成する対話画面を起動します。
生成に成功するとファイルが出力ディレクトリへ保存され、画面は終了します。`,
	RunE: screenCommand,
}

// screenCommand は、screen サブコマンドの実行ロジック本体です。
// 画面から引き渡されたファイルの保存は、親フローにあたるこの層が担います。
func screenCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	appCtx, err := builder.NewAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗しました: %w", err)
	}

	var handed *domain.BinaryFile
	hooks := flow.Hooks{
		OnImageGenerated: func(f domain.BinaryFile) {
			handed = &f
		},
		OnBack: func() {
			slog.Info("画面から離脱しました")
		},
	}

	model := tui.NewModel(ctx, appCtx.Generator, hooks)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("画面の実行に失敗しました: %w", err)
	}

	if handed == nil {
		// 離脱またはエラーで終了。保存するものはない
		return nil
	}

	outPath := path.Join(cfg.Options.OutputDir, handed.Name)
	if err := appCtx.Writer.Write(ctx, outPath, bytes.NewReader(handed.Data), handed.MimeType); err != nil {
		return fmt.Errorf("'%s' の保存に失敗しました: %w", outPath, err)
	}

	fmt.Println(outPath)
	return nil
}

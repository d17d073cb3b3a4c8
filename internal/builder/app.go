package builder

import (
	"github.com/shouni/go-canvas-kit/internal/config"
	"github.com/shouni/go-canvas-kit/pkg/generator"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持します。
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config            // 環境変数から読み込まれたグローバルな設定
	Options    config.GenerateOptions    // コマンドラインから渡された実行時の設定
	Generator  generator.CanvasGenerator // プロンプトから画像を生成する統合窓口
	Writer     remoteio.OutputWriter     // 生成された内容を保存するための出力先
	httpClient httpkit.ClientInterface   // 外部APIとの通信に使う共通クライアント
}

// Package flow は「プロンプト入力 → 画像生成 → ファイル引き渡し」という
// 一連の流れの状態遷移を管理します。表示層（TUI）にも非対話実行にも
// 依存しない、画面ロジックそのものを担う層です。
package flow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-canvas-kit/pkg/dataurl"
	"github.com/shouni/go-canvas-kit/pkg/domain"
)

// Phase は画面の状態機械の現在位置です。
// Idle → Submitting → {Success, Failed}、Failed → Idle（Dismiss）と遷移します。
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

// String は Phase のログ出力用表現を返します。
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy は送信中に追加の送信を要求した場合のエラーです。
// 同時に処理できる生成要求は常に1件だけです。
var ErrBusy = errors.New("a submission is already in flight")

// fallbackErrorMessage は外部エラーからメッセージを抽出できなかった場合の表示文言です。
const fallbackErrorMessage = "画像の生成に失敗しました。もう一度お試しください。"

// State は画面が排他的に所有する可変状態です。
// 画面の生成時に作られ、送信処理とエラー解除のみが書き換えます。
type State struct {
	Prompt  string
	Phase   Phase
	Message string // Failed 時のユーザー向けエラーメッセージ
}

// Loading は送信中かどうかを返します。送信トリガーの無効化判定に使います。
func (s State) Loading() bool {
	return s.Phase == PhaseSubmitting
}

// Hooks は親フローへ公開するコールバック群です。
type Hooks struct {
	// OnImageGenerated は生成成功1回につき、ちょうど1回だけ呼ばれます。
	OnImageGenerated func(file domain.BinaryFile)
	// OnBack は画面からの離脱要求で呼ばれます。状態は引き継がれません。
	OnBack func()
}

// Controller は画面の状態遷移を一手に引き受けます。
// 遷移メソッドは同一ゴルーチンから呼ばれる前提で、ロックは持ちません。
type Controller struct {
	state State
	hooks Hooks
	now   func() time.Time
}

// NewController は Controller を初期化します。hooks の各フィールドは nil を許容します。
func NewController(hooks Hooks) *Controller {
	return &Controller{
		state: State{Phase: PhaseIdle},
		hooks: hooks,
		now:   time.Now,
	}
}

// State は現在の状態のコピーを返します。
func (c *Controller) State() State {
	return c.state
}

// Submit はプロンプトを検証し、送信中状態へ遷移します。
// 空白のみのプロンプトはエラーを表示したまま Idle に留まり、外部呼び出しは発生しません。
func (c *Controller) Submit(prompt string) error {
	if c.state.Phase == PhaseSubmitting {
		return ErrBusy
	}

	c.state.Prompt = prompt

	req := domain.GenerationRequest{Prompt: prompt}
	if err := req.Validate(); err != nil {
		c.state.Message = "プロンプトを入力してください。"
		return err
	}

	// 前回のエラーはここでクリアされる
	c.state.Message = ""
	c.state.Phase = PhaseSubmitting
	return nil
}

// Resolve は外部呼び出しの成功結果（data URL）を受け取り、デコードした
// ファイルを親フローへ引き渡します。デコード失敗は Fail と同じ扱いになります。
func (c *Controller) Resolve(dataURL string) (*domain.BinaryFile, error) {
	if c.state.Phase != PhaseSubmitting {
		return nil, fmt.Errorf("resolve called in phase %s", c.state.Phase)
	}

	file, err := dataurl.Decode(dataURL, "")
	if err != nil {
		c.fail(err)
		return nil, err
	}
	file.Name = dataurl.FileName(file.MimeType, c.now())

	c.state.Phase = PhaseSuccess
	if c.hooks.OnImageGenerated != nil {
		c.hooks.OnImageGenerated(*file)
	}
	return file, nil
}

// Fail は外部呼び出しの失敗を受け取り、Failed へ遷移します。
func (c *Controller) Fail(err error) {
	if c.state.Phase != PhaseSubmitting {
		return
	}
	c.fail(err)
}

func (c *Controller) fail(err error) {
	c.state.Phase = PhaseFailed
	c.state.Message = messageFrom(err)
}

// Dismiss はエラー表示を解除して Idle に戻します。プロンプト文字列は保持されます。
func (c *Controller) Dismiss() {
	if c.state.Phase != PhaseFailed {
		return
	}
	c.state.Phase = PhaseIdle
	c.state.Message = ""
}

// Back は親フローへの離脱を通知します。
func (c *Controller) Back() {
	if c.hooks.OnBack != nil {
		c.hooks.OnBack()
	}
}

// messageFrom はエラーからユーザー向けメッセージを取り出します。
// 取り出せない場合は汎用の文言にフォールバックします。
func messageFrom(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return fallbackErrorMessage
	}
	if errors.Is(err, dataurl.ErrInvalidDataURL) {
		return fallbackErrorMessage
	}
	return err.Error()
}

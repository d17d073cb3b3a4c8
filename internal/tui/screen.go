// Package tui はプロンプト入力から画像生成までを行う対話画面を提供します。
// 状態遷移そのものは pkg/flow に委譲し、ここでは表示と入力だけを扱います。
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shouni/go-canvas-kit/pkg/flow"
	"github.com/shouni/go-canvas-kit/pkg/generator"
)

// generatedMsg は外部呼び出しの成功（data URL）を運ぶメッセージです。
type generatedMsg struct {
	dataURL string
}

// genErrMsg は外部呼び出しの失敗を運ぶメッセージです。
type genErrMsg struct {
	err error
}

// Model はプロンプト画面の bubbletea モデルです。
type Model struct {
	ctrl      *flow.Controller
	generator generator.CanvasGenerator
	ctx       context.Context

	input   textinput.Model
	spinner spinner.Model
	styles  Styles
	width   int

	quitting bool
}

// NewModel は画面を初期化します。hooks 経由で親フローへ結果を引き渡します。
func NewModel(ctx context.Context, gen generator.CanvasGenerator, hooks flow.Hooks) Model {
	ti := textinput.New()
	ti.Placeholder = "生成したい画像を説明してください"
	ti.CharLimit = 0
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctrl:      flow.NewController(hooks),
		generator: gen,
		ctx:       ctx,
		input:     ti,
		spinner:   s,
		styles:    DefaultStyles(),
	}
}

// Init は入力カーソルの点滅を開始します。
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update は画面のイベントループです。
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case generatedMsg:
		// デコード失敗は Failed 扱いになり、画面にメッセージが出る
		// 引き渡し自体は Hooks.OnImageGenerated 側で完了している
		if _, err := m.ctrl.Resolve(msg.dataURL); err == nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case genErrMsg:
		m.ctrl.Fail(msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	if m.ctrl.State().Loading() {
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.ctrl.State()

	switch msg.String() {
	case "ctrl+c":
		// 送信中でも離脱は許可する。生成結果は破棄される
		m.ctrl.Back()
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if st.Phase == flow.PhaseFailed {
			m.ctrl.Dismiss()
			return m, nil
		}
		m.ctrl.Back()
		m.quitting = true
		return m, tea.Quit

	case "enter":
		// 送信中はトリガーを無効化し、多重送信を防ぐ
		if st.Loading() {
			return m, nil
		}
		if st.Phase == flow.PhaseFailed {
			m.ctrl.Dismiss()
		}
		if err := m.ctrl.Submit(m.input.Value()); err != nil {
			return m, nil
		}
		return m, tea.Batch(m.generateCmd(m.input.Value()), m.spinner.Tick)
	}

	if st.Loading() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// generateCmd は外部呼び出しを非同期に実行する tea.Cmd を返します。
func (m Model) generateCmd(prompt string) tea.Cmd {
	return func() tea.Msg {
		dataURL, err := m.generator.GenerateDataURL(m.ctx, prompt)
		if err != nil {
			return genErrMsg{err: err}
		}
		return generatedMsg{dataURL: dataURL}
	}
}

// View は現在の状態を描画します。
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.ctrl.State()

	var body string
	switch st.Phase {
	case flow.PhaseSubmitting:
		body = m.spinner.View() + " 画像を生成しています..."
	case flow.PhaseFailed:
		body = m.styles.Error.Render("エラー: "+st.Message) + "\n\n" +
			m.styles.Help.Render("esc でエラーを閉じる / ctrl+c で戻る")
	default:
		body = m.input.View()
		if st.Message != "" {
			// 検証エラー（空プロンプトなど）
			body += "\n" + m.styles.Error.Render(st.Message)
		}
	}

	return m.styles.Title.Render("画像生成") + "\n\n" +
		body + "\n\n" +
		m.styles.Help.Render("enter で生成 / esc で戻る")
}

// State はテストおよび呼び出し元向けに画面の現在状態を公開します。
func (m Model) State() flow.State {
	return m.ctrl.State()
}

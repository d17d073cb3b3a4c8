package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-canvas-kit/pkg/dataurl"
	"github.com/shouni/go-canvas-kit/pkg/domain"
	"github.com/shouni/go-canvas-kit/pkg/flow"
)

// --- Mocks ---

type stubGenerator struct {
	dataURL string
	err     error
	calls   int
}

func (s *stubGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.ImageResponse, error) {
	return nil, errors.New("not used in screen tests")
}

func (s *stubGenerator) GenerateDataURL(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.dataURL, nil
}

// --- Helpers ---

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func pressKey(m Model, keyType tea.KeyType) (Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return updated.(Model), cmd
}

// --- Tests ---

func TestScreen_SubmitTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("非空プロンプトの送信で Submitting になる", func(t *testing.T) {
		gen := &stubGenerator{dataURL: "data:image/png;base64,AAAA"}
		m := NewModel(ctx, gen, flow.Hooks{})
		m = typeText(m, "a red circle")

		m, cmd := pressKey(m, tea.KeyEnter)

		assert.Equal(t, flow.PhaseSubmitting, m.State().Phase)
		assert.True(t, m.State().Loading())
		require.NotNil(t, cmd, "submit should produce a command")
	})

	t.Run("空プロンプトの送信は Idle のまま検証エラーを表示する", func(t *testing.T) {
		gen := &stubGenerator{}
		m := NewModel(ctx, gen, flow.Hooks{})

		m, _ = pressKey(m, tea.KeyEnter)

		st := m.State()
		assert.Equal(t, flow.PhaseIdle, st.Phase)
		assert.NotEmpty(t, st.Message)
		assert.Zero(t, gen.calls, "no external call for empty prompt")
		assert.Contains(t, m.View(), st.Message)
	})

	t.Run("送信中の enter は無視される", func(t *testing.T) {
		gen := &stubGenerator{dataURL: "data:image/png;base64,AAAA"}
		m := NewModel(ctx, gen, flow.Hooks{})
		m = typeText(m, "first")
		m, _ = pressKey(m, tea.KeyEnter)
		require.True(t, m.State().Loading())

		m, cmd := pressKey(m, tea.KeyEnter)

		assert.Nil(t, cmd)
		assert.Equal(t, "first", m.State().Prompt)
	})

	t.Run("送信中はスピナー表示になる", func(t *testing.T) {
		gen := &stubGenerator{dataURL: "data:image/png;base64,AAAA"}
		m := NewModel(ctx, gen, flow.Hooks{})
		m = typeText(m, "x")
		m, _ = pressKey(m, tea.KeyEnter)

		assert.Contains(t, m.View(), "生成しています")
	})
}

func TestScreen_ResultHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("成功メッセージでファイルが1回だけ引き渡されて終了する", func(t *testing.T) {
		var handed []domain.BinaryFile
		hooks := flow.Hooks{
			OnImageGenerated: func(f domain.BinaryFile) { handed = append(handed, f) },
		}
		gen := &stubGenerator{dataURL: dataurl.Encode("image/png", []byte{1, 2, 3})}
		m := NewModel(ctx, gen, hooks)
		m = typeText(m, "a red circle")
		m, cmd := pressKey(m, tea.KeyEnter)
		require.NotNil(t, cmd)

		// 非同期コマンドを同期実行して結果メッセージを取り出す
		msg := cmd()
		batch, ok := msg.(tea.BatchMsg)
		require.True(t, ok)
		var result tea.Msg
		for _, c := range batch {
			if got := c(); got != nil {
				if _, isGenerated := got.(generatedMsg); isGenerated {
					result = got
				}
			}
		}
		require.NotNil(t, result, "expected generatedMsg from batch")

		updated, quitCmd := m.Update(result)
		m = updated.(Model)

		require.Len(t, handed, 1)
		assert.Equal(t, "image/png", handed[0].MimeType)
		assert.Equal(t, 3, handed[0].Size())
		assert.Equal(t, flow.PhaseSuccess, m.State().Phase)
		require.NotNil(t, quitCmd)
	})

	t.Run("不正な data URL は Failed として表示される", func(t *testing.T) {
		called := false
		hooks := flow.Hooks{OnImageGenerated: func(domain.BinaryFile) { called = true }}
		gen := &stubGenerator{dataURL: "no-comma"}
		m := NewModel(ctx, gen, hooks)
		m = typeText(m, "x")
		m, _ = pressKey(m, tea.KeyEnter)

		updated, _ := m.Update(generatedMsg{dataURL: "no-comma"})
		m = updated.(Model)

		assert.False(t, called)
		assert.Equal(t, flow.PhaseFailed, m.State().Phase)
		assert.Contains(t, m.View(), "エラー")
	})

	t.Run("外部エラーは Failed になり esc で Idle に戻る", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("quota exceeded")}
		m := NewModel(ctx, gen, flow.Hooks{})
		m = typeText(m, "a red circle")
		m, _ = pressKey(m, tea.KeyEnter)

		updated, _ := m.Update(genErrMsg{err: errors.New("quota exceeded")})
		m = updated.(Model)

		st := m.State()
		assert.Equal(t, flow.PhaseFailed, st.Phase)
		assert.Equal(t, "quota exceeded", st.Message)
		assert.Contains(t, m.View(), "quota exceeded")

		m, _ = pressKey(m, tea.KeyEsc)

		st = m.State()
		assert.Equal(t, flow.PhaseIdle, st.Phase)
		assert.Empty(t, st.Message)
		assert.Equal(t, "a red circle", st.Prompt, "プロンプトは保持される")
		assert.Equal(t, "a red circle", m.input.Value(), "入力欄も保持される")
	})
}

func TestScreen_Back(t *testing.T) {
	ctx := context.Background()

	t.Run("Idle 中の esc で OnBack が呼ばれて終了する", func(t *testing.T) {
		backCalled := false
		m := NewModel(ctx, &stubGenerator{}, flow.Hooks{OnBack: func() { backCalled = true }})

		_, cmd := pressKey(m, tea.KeyEsc)

		assert.True(t, backCalled)
		require.NotNil(t, cmd)
	})

	t.Run("ctrl+c でも OnBack が呼ばれる", func(t *testing.T) {
		backCalled := false
		m := NewModel(ctx, &stubGenerator{}, flow.Hooks{OnBack: func() { backCalled = true }})

		_, cmd := pressKey(m, tea.KeyCtrlC)

		assert.True(t, backCalled)
		require.NotNil(t, cmd)
	})
}

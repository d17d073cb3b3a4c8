package tui

import "github.com/charmbracelet/lipgloss"

// Styles は画面全体で共有する描画スタイルです。
type Styles struct {
	Title lipgloss.Style
	Error lipgloss.Style
	Help  lipgloss.Style
}

// DefaultStyles は標準のカラーテーマを返します。
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

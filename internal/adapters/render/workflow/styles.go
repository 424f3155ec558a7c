package workflow

import (
	"github.com/bnema/vton-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	slotName   lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	validation lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	skeleton   lipgloss.Style
	result     lipgloss.Style
	historyID  lipgloss.Style
	historyAt  lipgloss.Style
	badges     map[domain.SlotStatus]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		slotName:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		validation: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		skeleton:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		result:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		historyID:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		historyAt:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		badges: map[domain.SlotStatus]lipgloss.Style{
			domain.SlotIdle:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			domain.SlotUploading: lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
			domain.SlotUploaded:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			domain.SlotFailed:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}

func (s styles) badge(status domain.SlotStatus) lipgloss.Style {
	if style, ok := s.badges[status]; ok {
		return style
	}
	return s.detail
}

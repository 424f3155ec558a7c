package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/vton-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const skeletonWidth = 24

type RenderOptions struct {
	Now time.Time
	// HistoryLimit caps the rendered history entries; zero renders all.
	HistoryLimit int
	HideHistory  bool
}

func renderView(state domain.State, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Virtual Try-On"),
		s.header.Render(fmt.Sprintf("slots ready: %d/2", readySlots(state))),
		s.section.Render(renderSlots(state, s)),
		s.section.Render(renderResult(state, s)),
	}

	if status := renderStatus(state, s); status != "" {
		lines = append(lines, s.section.Render(status))
	}

	if !opts.HideHistory {
		lines = append(lines, s.section.Render(renderHistory(state.History, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func readySlots(state domain.State) int {
	ready := 0
	for _, slot := range []domain.AssetSlot{state.Garment, state.Person} {
		if slot.Ready() {
			ready++
		}
	}
	return ready
}

func renderSlots(state domain.State, s styles) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		slotLine(state.Garment, s),
		slotLine(state.Person, s),
	)
}

func slotLine(slot domain.AssetSlot, s styles) string {
	parts := []string{
		s.slotName.Render(fmt.Sprintf("%-8s", slotLabel(slot.Kind))),
		s.badge(slot.Status).Render(fmt.Sprintf("[%s]", slot.Status)),
	}

	if slot.Asset != nil && slot.Asset.Filename != "" {
		parts = append(parts, s.detail.Render(slot.Asset.Filename))
	}
	if slot.Descriptor != nil {
		parts = append(parts, s.header.Render(fmt.Sprintf("(#%d)", slot.Descriptor.ID)))
	}

	line := strings.Join(parts, " ")
	if slot.ErrorMessage != "" {
		line += " " + s.warning.Render(slot.ErrorMessage)
	}

	return line
}

func slotLabel(kind domain.AssetKind) string {
	switch kind {
	case domain.AssetGarment:
		return "Garment"
	case domain.AssetPerson:
		return "Person"
	default:
		return string(kind)
	}
}

func renderResult(state domain.State, s styles) string {
	label := s.title.Render("Result")

	switch {
	case state.Gate.Visible:
		return lipgloss.JoinVertical(lipgloss.Left, label, renderSkeleton(s))
	case state.Result.ResultURL != "":
		return lipgloss.JoinVertical(lipgloss.Left, label, s.result.Render(state.Result.ResultURL))
	default:
		return lipgloss.JoinVertical(lipgloss.Left, label, s.empty.Render("No result yet."))
	}
}

func renderSkeleton(s styles) string {
	return s.skeleton.Render(strings.Repeat("░", skeletonWidth)) + " " + s.header.Render("generating...")
}

func renderStatus(state domain.State, s styles) string {
	lines := make([]string, 0, 2)
	if state.Status.Error != "" {
		lines = append(lines, s.warning.Render("Error: "+state.Status.Error))
	}
	if state.Validation != "" {
		lines = append(lines, s.validation.Render(state.Validation))
	}
	if len(lines) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHistory(history domain.HistoryState, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("History"),
		s.header.Render(fmt.Sprintf("entries: %d", len(history.Records))),
	}

	if history.Loading {
		lines = append(lines, s.empty.Render("Loading history..."))
	}
	if history.Error != "" {
		lines = append(lines, s.warning.Render("Failed to load history: "+history.Error))
	}

	if len(history.Records) == 0 {
		if !history.Loading && history.Error == "" {
			lines = append(lines, s.empty.Render("No try-on history yet."))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	records := history.Records
	if opts.HistoryLimit > 0 && len(records) > opts.HistoryLimit {
		records = records[:opts.HistoryLimit]
	}

	for _, record := range records {
		lines = append(lines, historyLine(record, opts.Now, s))
	}
	if hidden := len(history.Records) - len(records); hidden > 0 {
		lines = append(lines, s.empty.Render(fmt.Sprintf("... %d more", hidden)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func historyLine(record domain.HistoryRecord, now time.Time, s styles) string {
	generated := record.GeneratedImageURL
	if generated == "" {
		generated = "n/a"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.historyID.Render(fmt.Sprintf("#%-4d", record.ID)),
		" ",
		s.historyAt.Render(formatCreatedAt(record.CreatedAt, now)),
		" ",
		s.result.Render(generated),
	)
}

func formatCreatedAt(raw string, now time.Time) string {
	if strings.TrimSpace(raw) == "" {
		return "unknown"
	}

	createdAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	if now.IsZero() {
		return createdAt.Format(time.RFC3339)
	}

	createdAt = createdAt.In(now.Location())
	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := createdAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return createdAt.Format("15:04")
	}

	return createdAt.Format("15:04 on 02 Jan")
}

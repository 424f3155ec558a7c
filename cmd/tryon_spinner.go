package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/vton-cli/internal/application"
	"github.com/bnema/vton-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type tryOnDoneMsg struct {
	err error
}

type tryOnSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	err     error
	done    bool
}

func newTryOnSpinnerModel(label string, run tea.Cmd) tryOnSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return tryOnSpinnerModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m tryOnSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m tryOnSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tryOnDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m tryOnSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runTryOnSpinner keeps the spinner up until the skeleton gate closes, which
// is never earlier than the minimum display window.
func runTryOnSpinner(ctx context.Context, output io.Writer, workflow *application.Workflow) (domain.CompositionResult, error) {
	var result domain.CompositionResult
	runCmd := func() tea.Msg {
		var err error
		result, err = workflow.TryOn(ctx)
		select {
		case <-workflow.SkeletonDone():
		case <-ctx.Done():
		}
		return tryOnDoneMsg{err: err}
	}

	p := tea.NewProgram(
		newTryOnSpinnerModel("Generating try-on...", runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.CompositionResult{}, err
	}

	final, ok := finalModel.(tryOnSpinnerModel)
	if !ok {
		return domain.CompositionResult{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result, final.err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/agentctl/internal/domain"
)

// lifecycleOp is one orchestrator call driven from the CLI.
type lifecycleOp struct {
	action  domain.Action
	program domain.ProgramID
	run     func(context.Context) error
}

func (op lifecycleOp) progressLabel() string {
	switch op.action {
	case domain.ActionStart:
		return "Starting agent..."
	case domain.ActionStop:
		return "Stopping agent..."
	case domain.ActionMigrate:
		return fmt.Sprintf("Migrating agent to %s...", op.program)
	case domain.ActionWithdraw:
		return "Withdrawing funds..."
	default:
		return fmt.Sprintf("Running %s...", op.action)
	}
}

func (op lifecycleOp) doneMessage() string {
	switch op.action {
	case domain.ActionStart:
		return "Agent started."
	case domain.ActionStop:
		return "Agent stopped."
	case domain.ActionMigrate:
		return fmt.Sprintf("Agent migrated to %s.", op.program)
	case domain.ActionWithdraw:
		return "Funds withdrawn."
	default:
		return "Done."
	}
}

type lifecycleDoneMsg struct {
	err error
}

type lifecycleSpinnerModel struct {
	spinner spinner.Model
	op      lifecycleOp
	now     func() time.Time
	started time.Time
	run     tea.Cmd
	err     error
	done    bool
}

func newLifecycleSpinnerModel(op lifecycleOp, now func() time.Time, run tea.Cmd) lifecycleSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return lifecycleSpinnerModel{
		spinner: s,
		op:      op,
		now:     now,
		started: now(),
		run:     run,
	}
}

func (m lifecycleSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m lifecycleSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case lifecycleDoneMsg:
		m.done = true
		m.err = m.explain(msg.err)
		return m, tea.Quit
	default:
		return m, nil
	}
}

// explain appends the verdict explanation to eligibility denials so the
// user sees why the action was refused.
func (m lifecycleSpinnerModel) explain(err error) error {
	var denied *domain.EligibilityError
	if !errors.As(err, &denied) {
		return err
	}
	return fmt.Errorf("%w: %s", err, denied.Verdict.Explain(m.now()))
}

func (m lifecycleSpinnerModel) View() string {
	if m.done {
		return ""
	}

	elapsed := m.now().Sub(m.started).Truncate(time.Second)
	if elapsed < time.Second {
		return fmt.Sprintf("%s %s", m.spinner.View(), m.op.progressLabel())
	}
	return fmt.Sprintf("%s %s (%s)", m.spinner.View(), m.op.progressLabel(), elapsed)
}

func runLifecycleSpinner(ctx context.Context, output io.Writer, now func() time.Time, op lifecycleOp) error {
	runCmd := func() tea.Msg {
		return lifecycleDoneMsg{err: op.run(ctx)}
	}

	p := tea.NewProgram(
		newLifecycleSpinnerModel(op, now, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(lifecycleSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

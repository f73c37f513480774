package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// reservedLines is the number of non-scrolling lines in the pager view
// (header, separator, footer).
const reservedLines = 4

// PagerUI implements UI with a scrollable Bubble Tea view for long plans.
// Short output is printed directly without entering the pager.
type PagerUI struct {
	output io.Writer
}

// NewPagerUI creates a new PagerUI writing to output.
func NewPagerUI(output io.Writer) *PagerUI {
	return &PagerUI{output: output}
}

// DisplayOptions prints options directly; option lists are always short
// enough not to need pagination.
func (p *PagerUI) DisplayOptions(ctx context.Context, opts *m.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, opt := range opts.List() {
		if _, err := fmt.Fprintf(p.output, "%s %s\n", opt.Flag, opt.Value); err != nil {
			return err
		}
	}

	return nil
}

// DisplayPlan shows the plan rows in a scrollable view when they do not fit
// the terminal, and prints them directly otherwise.
func (p *PagerUI) DisplayPlan(ctx context.Context, rows []PlanRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newPlanModel(rows)

	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayCheckFindings prints diagnostics directly; they go to build logs
// and must not be swallowed by an alternate screen.
func (p *PagerUI) DisplayCheckFindings(ctx context.Context, findings []CheckFinding) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, finding := range findings {
		line := fmt.Sprintf("%s: %s\n", finding.File, finding.Message)
		if finding.Line > 0 {
			line = fmt.Sprintf("%s:%d: %s\n", finding.File, finding.Line, finding.Message)
		}

		if _, err := io.WriteString(p.output, line); err != nil {
			return err
		}
	}

	return nil
}

// planModel is the Bubble Tea model for scrolling through plan rows.
type planModel struct {
	rows     []PlanRow
	height   int
	width    int
	offset   int
	quitting bool
}

func newPlanModel(rows []PlanRow) planModel {
	return planModel{rows: rows}
}

func (pm planModel) Init() tea.Cmd {
	return nil
}

func (pm planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.height = msg.Height
		pm.width = msg.Width

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	return pm, nil
}

func (pm planModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "down", "j":
		pm.offset = min(pm.offset+1, pm.maxOffset())

	case "up", "k":
		pm.offset = max(pm.offset-1, 0)

	case "g", "home":
		pm.offset = 0

	case "G", "end":
		pm.offset = pm.maxOffset()

	case "d", "pgdown":
		pm.offset = min(pm.offset+pm.itemsPerPage(), pm.maxOffset())

	case "u", "pgup":
		pm.offset = max(pm.offset-pm.itemsPerPage(), 0)
	}

	return pm, nil
}

func (pm planModel) View() string {
	if pm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("Compilation plan (release / module / root -> output)\n\n")

	end := len(pm.rows)
	if pm.needsPagination() {
		end = min(pm.offset+pm.itemsPerPage(), len(pm.rows))
	}

	start := pm.offset
	if start > end {
		start = end
	}

	for _, row := range pm.rows[start:end] {
		release := row.Release.String()
		if release == "" {
			release = "-"
		}

		module := row.Module
		if module == "" {
			module = "-"
		}

		fmt.Fprintf(&b, "  %-4s %-20s %s -> %s (%d files)\n", release, module, row.Root, row.Output, row.FileCount)
	}

	if pm.needsPagination() {
		fmt.Fprintf(&b, "\n  %d-%d of %d  (j/k scroll, q quit)\n", start+1, end, len(pm.rows))
	}

	return b.String()
}

func (pm planModel) itemsPerPage() int {
	if pm.height <= reservedLines {
		return 1
	}

	return pm.height - reservedLines
}

func (pm planModel) maxOffset() int {
	return max(len(pm.rows)-pm.itemsPerPage(), 0)
}

func (pm planModel) needsPagination() bool {
	return pm.height > 0 && len(pm.rows) > pm.itemsPerPage()
}

package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// SimpleUI implements UI using cobra Command's print helpers.
type SimpleUI struct {
	cmd   *cobra.Command
	table bool
}

// NewSimpleUI creates a new SimpleUI. When table is true, options are
// rendered as a table instead of one flag/value pair per line.
func NewSimpleUI(cmd *cobra.Command, table bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, table: table}
}

// DisplayOptions prints the computed compiler options in emission order.
func (s *SimpleUI) DisplayOptions(ctx context.Context, opts *m.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.table {
		s.cmd.Print(renderOptionsTable(opts))
		return nil
	}

	for _, opt := range opts.List() {
		s.cmd.Printf("%s %s\n", opt.Flag, opt.Value)
	}

	return nil
}

// DisplayPlan prints one row per (release, module, root) group.
func (s *SimpleUI) DisplayPlan(ctx context.Context, rows []PlanRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Print(renderPlanTable(rows))

	return nil
}

// DisplayCheckFindings prints patch validation diagnostics, one per line.
func (s *SimpleUI) DisplayCheckFindings(ctx context.Context, findings []CheckFinding) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, finding := range findings {
		if finding.Line > 0 {
			s.cmd.Printf("%s:%d: %s\n", finding.File, finding.Line, finding.Message)
		} else {
			s.cmd.Printf("%s: %s\n", finding.File, finding.Message)
		}
	}

	return nil
}

func renderOptionsTable(opts *m.Options) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Option", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, opt := range opts.List() {
		table.Append([]string{opt.Flag, opt.Value})
	}

	table.Render()

	return buffer.String()
}

func renderPlanTable(rows []PlanRow) string {
	var buffer bytes.Buffer

	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Release", "Module", "Root", "Output", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	totalFiles := 0

	for _, row := range rows {
		release := row.Release.String()
		if release == "" {
			release = "-"
		}

		module := row.Module
		if module == "" {
			module = "-"
		}

		table.Append([]string{
			release,
			module,
			string(row.Root),
			string(row.Output),
			fmt.Sprintf("%d", row.FileCount),
		})

		totalFiles += row.FileCount
	}

	table.SetFooter([]string{
		"",
		"",
		"",
		fmt.Sprintf("Total Roots %d", len(rows)),
		fmt.Sprintf("%d", totalFiles),
	})
	table.Render()

	return buffer.String()
}

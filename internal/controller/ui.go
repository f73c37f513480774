// Package controller provides the output adapters of the modpatch CLI.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "modpatch.dev/pkg/modpatch/internal/model"
)

// PlanRow is one line of the compilation plan: a root directory contributing
// files for a (release, module) pair and the output directory computed for it.
type PlanRow struct {
	Release   m.Release
	Module    string
	Root      m.Path
	Output    m.Path
	FileCount int
}

// CheckFinding is one diagnostic produced by validating a patch file.
type CheckFinding struct {
	File    m.Path
	Line    int
	Message string
}

// UI defines the interface for displaying computed options and plans.
// Implementations can use different output methods (plain text, pager).
type UI interface {
	DisplayOptions(ctx context.Context, opts *m.Options) error
	DisplayPlan(ctx context.Context, rows []PlanRow) error
	DisplayCheckFindings(ctx context.Context, findings []CheckFinding) error
}

// IsTTY reports whether the given file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI selects the UI implementation: the pager when interactive output was
// requested on a terminal, the plain writer otherwise.
func NewUI(cmd *cobra.Command, interactive, table bool) UI {
	if interactive && IsTTY(os.Stdout) {
		return NewPagerUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd, table)
}

package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "modpatch.dev/pkg/modpatch/internal/model"
)

func TestCheckCmd_PassesFiles(t *testing.T) {
	fake := installFakeWorkflow(t)

	cmd := baseRootCmd()
	cmd.AddCommand(newCheckCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"check", "a/module-info-patch.txt", "b/module-info-patch.txt"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []m.Path{"a/module-info-patch.txt", "b/module-info-patch.txt"}, fake.checkPaths)
}

func TestCheckCmd_RequiresArguments(t *testing.T) {
	installFakeWorkflow(t)

	cmd := baseRootCmd()
	cmd.AddCommand(newCheckCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"check"})
	require.Error(t, cmd.Execute())
}

func TestCheckCmd_PropagatesFailure(t *testing.T) {
	fake := installFakeWorkflow(t)
	fake.err = errors.New("1 invalid patch file(s)")

	cmd := baseRootCmd()
	cmd.AddCommand(newCheckCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"check", "bad.txt"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid patch file")
}

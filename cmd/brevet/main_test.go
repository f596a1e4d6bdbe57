package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestManualCommand(t *testing.T) {
	all := strings.Repeat("Très bonne maîtrise,", 7) + "Très bonne maîtrise"
	out, err := run(t, "manual", "--s1", all, "--s2", all)
	require.NoError(t, err)
	assert.Equal(t, "400 / 400\n20.0 / 20\n", out)
}

func TestManualCommand_HalfCreditForUnset(t *testing.T) {
	out, err := run(t, "manual", "--s1", "Très bonne maîtrise,,,,,,,")
	require.NoError(t, err)
	assert.Equal(t, "25 / 400\n1.25 / 20\n", out)
}

func TestManualCommand_ContractErrors(t *testing.T) {
	_, err := run(t, "manual", "--s1", "Très bonne maîtrise")
	assert.ErrorContains(t, err, "--s1")

	_, err = run(t, "manual", "--s2", "Parfait,,,,,,,")
	assert.ErrorContains(t, err, "--s2")
}

func TestPDFCommand_UnreadableDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s1.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o600))

	out, err := run(t, "pdf", path, "--pdftoppm", "pdftoppm-missing")
	require.NoError(t, err)
	assert.Equal(t, "Aucun résultat détecté\n", out)
}

func TestPDFCommand_Args(t *testing.T) {
	_, err := run(t, "pdf")
	assert.Error(t, err)

	_, err = run(t, "pdf", filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	out, err := run(t, "pdf", "-", "-")
	require.NoError(t, err)
	assert.Equal(t, "Aucun résultat détecté\n", out)
}

func TestLevelsCommand(t *testing.T) {
	out, err := run(t, "levels")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Très bonne maîtrise")
	assert.Contains(t, lines[0], "50 pts")
	assert.Contains(t, lines[3], "🟠")
}

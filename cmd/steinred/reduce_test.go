package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/steinred/eps"
)

const pathSTP = `33D32945 STP File, STP Format Version 1.0
SECTION Comment
Name "path4"
END
SECTION Graph
Nodes 4
Edges 3
E 1 2 1
E 2 3 2
E 3 4 3
END
SECTION Terminals
T 1
T 4
END
EOF
`

func writeInstance(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.stp")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestReduceCmd_CollapsesPathInstance(t *testing.T) {
	configPath := ""
	cmd := newReduceCmd(&configPath)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{writeInstance(t, pathSTP)})

	require.NoError(t, cmd.Execute())

	report := out.String()
	assert.Contains(t, report, "fixed offset")
	assert.Contains(t, report, "6")
	// The whole path folds into the root.
	assert.Regexp(t, `nodes\s+4\s+1`, report)
	assert.Regexp(t, `edges\s+3\s+0`, report)
	assert.Regexp(t, `terminals\s+2\s+1`, report)
}

func TestInfoCmd_ReportsKind(t *testing.T) {
	cmd := newInfoCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{writeInstance(t, pathSTP)})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "path4")
	assert.Contains(t, out.String(), "Steiner tree")
}

func TestLoadSettings_Defaults(t *testing.T) {
	cfg, err := loadSettings("")
	require.NoError(t, err)
	assert.Equal(t, eps.DefaultTolerance, cfg.Tolerance)
	assert.Equal(t, 10, cfg.Rounds)
	assert.True(t, cfg.Pack)
}

func TestLoadSettings_FileOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steinred.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance: 0.001\nrounds: 0\npack: false\n"), 0o644))

	cfg, err := loadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 0.001, cfg.Tolerance)
	assert.Equal(t, 10, cfg.Rounds) // zero rounds falls back to the default
	assert.False(t, cfg.Pack)

	_, err = loadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

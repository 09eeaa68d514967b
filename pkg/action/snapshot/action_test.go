package snapshot

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtsgen/pkg/options"
)

const (
	manifestPath = "/proj/dtsgen.manifest.yaml"
	dumpPath     = "/proj/game.yaml"
)

const v1 = `
types:
  - namespace: Game
    name: Color
    kind: enum
    fields:
      - {name: Red, value: 1}
`

const v2 = `
types:
  - namespace: Game
    name: Color
    kind: enum
    fields:
      - {name: Red, value: 1}
      - {name: Green, value: 2}
`

func snapshotOpts(t *testing.T) *options.Options {
	t.Helper()
	opts, err := options.New(options.WithInputs(dumpPath), options.WithOutDir("/proj/types"))
	require.NoError(t, err)
	return opts
}

func TestSnapshotLifecycle(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, dumpPath, []byte(v1), 0o644))
	file, err := Generate(fs, snapshotOpts(t), manifestPath, "game", "v1")
	require.NoError(t, err)
	assert.Equal(t, "/proj/snapshots/game@v1.d.ts", file)

	_, err = DiffCurrentWithPrevious(fs, manifestPath)
	assert.True(t, errors.Is(err, ErrNoHistory))

	require.NoError(t, afero.WriteFile(fs, dumpPath, []byte(v2), 0o644))
	file, err = Generate(fs, snapshotOpts(t), manifestPath, "game", "v2")
	require.NoError(t, err)
	assert.Equal(t, "/proj/snapshots/game@v2.d.ts", file)

	m, err := List(fs, manifestPath)
	require.NoError(t, err)
	require.Len(t, m.Snapshots, 2)
	assert.Equal(t, "v2", m.CurrentVersion)
	assert.Equal(t, "v1", m.PreviousVersion)

	current, err := afero.ReadFile(fs, "/proj/types/index.d.ts")
	require.NoError(t, err)
	snap, err := afero.ReadFile(fs, file)
	require.NoError(t, err)
	assert.Equal(t, string(current), string(snap))

	diff, err := DiffCurrentWithPrevious(fs, manifestPath)
	require.NoError(t, err)
	assert.Contains(t, diff, "Green = 2,")
}

func TestDiffUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, dumpPath, []byte(v1), 0o644))

	_, err := Generate(fs, snapshotOpts(t), manifestPath, "game", "v1")
	require.NoError(t, err)
	_, err = Generate(fs, snapshotOpts(t), manifestPath, "game", "v2")
	require.NoError(t, err)

	diff, err := DiffCurrentWithPrevious(fs, manifestPath)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

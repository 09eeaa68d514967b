package snapshot

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmmoran/dtsgen/pkg/action/generate"
	"github.com/cmmoran/dtsgen/pkg/manifest"
	"github.com/cmmoran/dtsgen/pkg/options"
)

var ErrNoHistory = errors.New("no current/previous snapshots recorded")

// Dir is where snapshot copies live, relative to the manifest.
const Dir = "snapshots"

// Generate writes the current declarations, keeps a versioned copy next to
// the manifest and records it.
func Generate(fs afero.Fs, opts *options.Options, manifestPath, snapshotName, snapshotVersion string) (string, error) {
	m, err := manifest.Load(fs, manifestPath)
	if err != nil {
		return "", err
	}

	outFile, err := generate.Generate(fs, opts)
	if err != nil {
		return "", err
	}
	text, err := afero.ReadFile(fs, outFile)
	if err != nil {
		return "", errors.Wrap(err, "read generated declarations")
	}

	snapFile := filepath.Join(filepath.Dir(manifestPath), Dir, fmt.Sprintf("%s@%s.d.ts", snapshotName, snapshotVersion))
	if err = generate.WriteFile(fs, snapFile, string(text)); err != nil {
		return "", err
	}

	m.AddSnapshot(manifest.Snapshot{
		Name:    snapshotName,
		Version: snapshotVersion,
		File:    snapFile,
		Seeds:   append([]string(nil), opts.Seeds...),
	})

	if err := m.Save(fs, manifestPath); err != nil {
		return "", err
	}

	return snapFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(fs afero.Fs, manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(fs, manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshot files, and returns a textual diff of their contents. An empty
// diff means the declaration surface did not change.
func DiffCurrentWithPrevious(fs afero.Fs, manifestPath string) (string, error) {
	m, err := manifest.Load(fs, manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", ErrNoHistory
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", errors.New("snapshot files not found in manifest")
	}

	current, err := afero.ReadFile(fs, currentPath)
	if err != nil {
		return "", errors.Wrap(err, "read current snapshot")
	}

	previous, err := afero.ReadFile(fs, previousPath)
	if err != nil {
		return "", errors.Wrap(err, "read previous snapshot")
	}

	return cmp.Diff(string(previous), string(current)), nil
}

// Package generate runs a full generation: load descriptors, select seeds,
// discover, render and persist.
package generate

import (
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/cmmoran/dtsgen/internal/declgen"
	"github.com/cmmoran/dtsgen/pkg/options"
	"github.com/cmmoran/dtsgen/pkg/provider"
	"github.com/cmmoran/dtsgen/pkg/provider/gotypes"
	"github.com/cmmoran/dtsgen/pkg/provider/metadata"
)

// LoadProvider opens the descriptor source named by opts.Provider. The go
// provider reads packages from disk and ignores fs.
func LoadProvider(fs afero.Fs, opts *options.Options) (provider.Provider, error) {
	switch opts.Provider {
	case options.ProviderGo:
		return gotypes.Load(gotypes.Config{
			Dir:              opts.Dir,
			Patterns:         opts.Inputs,
			TrimModulePrefix: opts.TrimModulePrefix,
		})
	default:
		if len(opts.Inputs) == 0 {
			return nil, errors.WithHint(
				errors.Wrap(options.ErrInvalidOptions, "no metadata inputs"),
				"pass one or more dump files with --input",
			)
		}
		return metadata.Load(fs, opts.Inputs...)
	}
}

// Render produces the declaration text for opts without writing it.
func Render(fs afero.Fs, opts *options.Options) (string, error) {
	gen, err := declgen.NewWithOpts(opts)
	if err != nil {
		return "", err
	}
	p, err := LoadProvider(fs, &gen.Opts)
	if err != nil {
		return "", err
	}
	seeds, err := provider.Seeds(p, &gen.Opts)
	if err != nil {
		return "", err
	}
	return gen.Generate(seeds)
}

// Generate renders opts and writes the result to OutDir/OutFile, returning
// the written path.
func Generate(fs afero.Fs, opts *options.Options) (string, error) {
	text, err := Render(fs, opts)
	if err != nil {
		return "", err
	}
	outFile := filepath.Clean(filepath.Join(opts.OutDir, opts.OutFile))
	if err = WriteFile(fs, outFile, text); err != nil {
		return "", err
	}
	slog.Info("wrote declarations", "file", outFile, "bytes", len(text))
	return outFile, nil
}

// WriteFile replaces path with text. The content goes to a temp file in the
// same directory first and is renamed into place; the temp file is removed
// on any failure.
func WriteFile(fs afero.Fs, path, text string) (err error) {
	dir := filepath.Dir(path)
	if err = fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", dir)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = fs.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(text); err != nil {
		return errors.Wrapf(err, "write %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	if err = fs.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "rename into %s", path)
	}
	return nil
}

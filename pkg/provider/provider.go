// Package provider defines where type descriptors come from.
package provider

import (
	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtsgen/internal/model"
	"github.com/cmmoran/dtsgen/pkg/options"
)

var ErrUnknownSeed = errors.New("unknown seed type")

// Provider exposes the types a host environment declares.
type Provider interface {
	// Types returns the declared types in input order.
	Types() []model.Type
	// Lookup resolves a qualified name (Namespace.Name).
	Lookup(qualifiedName string) (model.Type, bool)
}

// Seeds selects the seed list for a run: the explicitly named seeds when
// present, otherwise every declared type not excluded by opts.
func Seeds(p Provider, opts *options.Options) ([]model.Type, error) {
	if len(opts.Seeds) > 0 {
		seeds := make([]model.Type, 0, len(opts.Seeds))
		for _, name := range opts.Seeds {
			t, ok := p.Lookup(name)
			if !ok {
				return nil, errors.WithHint(
					errors.Wrapf(ErrUnknownSeed, "%q", name),
					"seed names are fully qualified, e.g. UnityEngine.Vector3",
				)
			}
			seeds = append(seeds, t)
		}
		return seeds, nil
	}

	seeds := make([]model.Type, 0)
	for _, t := range p.Types() {
		if opts.ShouldOmit(t.Namespace(), t.Name()) {
			continue
		}
		seeds = append(seeds, t)
	}
	return seeds, nil
}

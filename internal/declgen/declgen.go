// Package declgen discovers the closure of host types reachable from a seed
// list and renders it as an ambient declaration module.
package declgen

import (
	"log/slog"

	"github.com/cmmoran/dtsgen/internal/model"
	"github.com/cmmoran/dtsgen/pkg/options"
)

// Generator holds the configuration of a generation run. Each Generate call
// uses its own Walker, so independent runs never share state.
type Generator struct {
	Opts   options.Options
	Logger *slog.Logger

	mapper *NameMapper
}

// New creates a Generator with opts applied over the defaults.
func New(opts ...options.Option) (*Generator, error) {
	o := options.NewOptions()
	for _, fn := range opts {
		fn(o)
	}

	return NewWithOpts(o)
}

func NewWithOpts(opts *options.Options) (*Generator, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	return &Generator{
		Opts:   *opts,
		Logger: slog.Default(),
		mapper: NewNameMapper(opts.Keywords),
	}, nil
}

// Discover builds the declaration tree for seeds.
func (g *Generator) Discover(seeds []model.Type) (*model.Namespace, error) {
	return NewWalker(g.mapper, g.Logger).Discover(seeds)
}

// Render emits root using the configured root namespace and indentation.
func (g *Generator) Render(root *model.Namespace) string {
	return Renderer{
		RootNamespace: g.Opts.RootNamespace,
		Indent:        g.Opts.Indent,
	}.Render(root)
}

// Generate discovers and renders seeds in one step.
func (g *Generator) Generate(seeds []model.Type) (string, error) {
	root, err := g.Discover(seeds)
	if err != nil {
		return "", err
	}
	out := g.Render(root)
	g.Logger.Debug("rendered declarations", "seeds", len(seeds), "bytes", len(out))
	return out, nil
}

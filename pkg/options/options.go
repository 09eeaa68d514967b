package options

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrInvalidOptions = errors.New("invalid options")

const (
	ProviderMetadata = "metadata"
	ProviderGo       = "go"

	DefaultRootNamespace = "CS"
	DefaultIndent        = "    "
)

// Options control descriptor loading, discovery and rendering.
//
// Provider          – "metadata" (descriptor dumps) or "go" (Go packages).
// Inputs            – dump files, or package patterns for the go provider.
// Dir               – working directory for the go provider.
// Seeds             – qualified type names to seed discovery; empty means every provided type.
// OutDir            – output directory
// OutFile           – output filename
// RootNamespace     – name of the ambient namespace wrapping everything.
// Indent            – one nesting level of indentation.
// ExcludeTypes      – seed types to skip (case‑insensitive, simple or qualified name).
// ExcludeNamespaces – seed namespaces to skip, prefixes included.
// Keywords          – extra host name → target keyword remaps.
// TrimModulePrefix  – go provider: drop the module path from namespaces.
// Note: exclusions only narrow the seed list; referenced types are always declared.
type Options struct {
	Provider          string            `json:"provider,omitempty" yaml:"provider,omitempty" toml:"provider,omitempty" mapstructure:"provider,omitempty"`
	Inputs            []string          `json:"inputs,omitempty" yaml:"inputs,omitempty" toml:"inputs,omitempty" mapstructure:"inputs,omitempty"`
	Dir               string            `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty" mapstructure:"dir,omitempty"`
	Seeds             []string          `json:"seeds,omitempty" yaml:"seeds,omitempty" toml:"seeds,omitempty" mapstructure:"seeds,omitempty"`
	OutDir            string            `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	OutFile           string            `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	RootNamespace     string            `json:"root_namespace,omitempty" yaml:"root_namespace,omitempty" toml:"root_namespace,omitempty" mapstructure:"root_namespace,omitempty"`
	Indent            string            `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty" mapstructure:"indent,omitempty"`
	ExcludeTypes      []string          `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ExcludeNamespaces []string          `json:"exclude_namespaces,omitempty" yaml:"exclude_namespaces,omitempty" toml:"exclude_namespaces,omitempty" mapstructure:"exclude_namespaces,omitempty"`
	Keywords          map[string]string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty" mapstructure:"keywords,omitempty"`
	TrimModulePrefix  bool              `json:"trim_module_prefix,omitempty" yaml:"trim_module_prefix,omitempty" toml:"trim_module_prefix,omitempty" mapstructure:"trim_module_prefix,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		Provider:      ProviderMetadata,
		Dir:           ".",
		OutDir:        "types",
		OutFile:       "index.d.ts",
		RootNamespace: DefaultRootNamespace,
		Indent:        DefaultIndent,
	}
}

// Normalize fills defaults and validates the options.
func (o *Options) Normalize() error {
	if o.Provider == "" {
		o.Provider = ProviderMetadata
	}
	o.Provider = strings.ToLower(o.Provider)
	if o.Provider != ProviderMetadata && o.Provider != ProviderGo {
		return errors.WithHint(
			errors.Wrapf(ErrInvalidOptions, "unknown provider %q", o.Provider),
			"use \"metadata\" or \"go\"",
		)
	}
	if len(o.Dir) == 0 {
		o.Dir = "."
	}
	if strings.Contains(o.Dir, ".") {
		o.Dir, _ = filepath.Abs(o.Dir)
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "types"
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.OutFile) == 0 {
		o.OutFile = "index.d.ts"
	}
	if o.Indent == "" {
		o.Indent = DefaultIndent
	}
	o.RootNamespace = strings.TrimSpace(o.RootNamespace)
	if o.RootNamespace == "" {
		o.RootNamespace = DefaultRootNamespace
	}
	if strings.ContainsAny(o.RootNamespace, " \t{}") {
		return errors.Wrapf(ErrInvalidOptions, "root namespace %q is not an identifier", o.RootNamespace)
	}
	for i, s := range o.Seeds {
		o.Seeds[i] = strings.TrimSpace(s)
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithProvider(p string) Option      { return func(o *Options) { o.Provider = p } }
func WithInputs(in ...string) Option    { return func(o *Options) { o.Inputs = append(o.Inputs, in...) } }
func WithDir(d string) Option           { return func(o *Options) { o.Dir = d } }
func WithOutDir(d string) Option        { return func(o *Options) { o.OutDir = d } }
func WithOutFile(f string) Option       { return func(o *Options) { o.OutFile = f } }
func WithRootNamespace(n string) Option { return func(o *Options) { o.RootNamespace = n } }
func WithIndent(s string) Option        { return func(o *Options) { o.Indent = s } }
func WithTrimModulePrefix() Option      { return func(o *Options) { o.TrimModulePrefix = true } }
func WithSeeds(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.Seeds = append(o.Seeds, strings.TrimSpace(n))
		}
	}
}
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
func WithExcludeNamespaces(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeNamespaces = append(o.ExcludeNamespaces, strings.TrimSpace(n))
		}
	}
}
func WithKeyword(host, target string) Option {
	return func(o *Options) {
		if o.Keywords == nil {
			o.Keywords = make(map[string]string)
		}
		o.Keywords[host] = target
	}
}

// New applies opts over NewOptions and normalizes the result.
func New(opts ...Option) (*Options, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	if err := o.Normalize(); err != nil {
		return nil, err
	}
	return o, nil
}

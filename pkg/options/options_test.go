package options

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	o, err := New(
		WithProvider("GO"),
		WithInputs("./a/...", "./b"),
		WithSeeds(" Game.Entity ", "Game.Item"),
		WithExcludeTypes(" Secret "),
		WithExcludeNamespaces("Game.Internal"),
		WithKeyword("System.Decimal", "number"),
		WithOutFile("game.d.ts"),
		WithTrimModulePrefix(),
	)
	require.NoError(t, err)

	assert.Equal(t, ProviderGo, o.Provider)
	assert.Equal(t, []string{"./a/...", "./b"}, o.Inputs)
	assert.Equal(t, []string{"Game.Entity", "Game.Item"}, o.Seeds)
	assert.Equal(t, []string{"Secret"}, o.ExcludeTypes)
	assert.Equal(t, []string{"Game.Internal"}, o.ExcludeNamespaces)
	assert.Equal(t, map[string]string{"System.Decimal": "number"}, o.Keywords)
	assert.Equal(t, "game.d.ts", o.OutFile)
	assert.Equal(t, "types", o.OutDir)
	assert.Equal(t, DefaultRootNamespace, o.RootNamespace)
	assert.Equal(t, DefaultIndent, o.Indent)
	assert.True(t, o.TrimModulePrefix)
	assert.True(t, filepath.IsAbs(o.Dir), "a relative working directory is made absolute")
}

func TestNormalize(ttt *testing.T) {
	tests := []struct {
		name    string
		in      Options
		check   func(t *testing.T, o *Options)
		wantErr bool
	}{
		{
			name: "zero value gets defaults",
			in:   Options{},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, ProviderMetadata, o.Provider)
				assert.Equal(t, "types", o.OutDir)
				assert.Equal(t, "index.d.ts", o.OutFile)
				assert.Equal(t, DefaultRootNamespace, o.RootNamespace)
				assert.Equal(t, DefaultIndent, o.Indent)
			},
		},
		{
			name: "root namespace is trimmed",
			in:   Options{RootNamespace: "  Host "},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, "Host", o.RootNamespace)
			},
		},
		{
			name: "seeds are trimmed",
			in:   Options{Seeds: []string{" A.B", "C.D "}},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, []string{"A.B", "C.D"}, o.Seeds)
			},
		},
		{
			name:    "unknown provider",
			in:      Options{Provider: "reflection"},
			wantErr: true,
		},
		{
			name:    "root namespace with braces",
			in:      Options{RootNamespace: "CS{"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			o := tt.in
			err := o.Normalize()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidOptions))
				return
			}
			require.NoError(t, err)
			tt.check(t, &o)
		})
	}
}

func TestShouldOmit(ttt *testing.T) {
	o := &Options{
		ExcludeTypes:      []string{"secret", "Game.Debug.Console"},
		ExcludeNamespaces: []string{"Game.Internal", ".Editor."},
	}
	tests := []struct {
		namespace string
		name      string
		want      bool
	}{
		{"Game", "Secret", true},
		{"Game.Debug", "Console", true},
		{"Game", "Console", false},
		{"Game.Internal", "Pool", true},
		{"Game.Internal.Sub", "Pool", true},
		{"Game.InternalTools", "Pool", false},
		{"Editor", "Window", true},
		{"Editor.Gizmos", "Handle", true},
		{"", "Loose", false},
		{"Game", "Entity", false},
	}
	for _, tt := range tests {
		ttt.Run(tt.namespace+"."+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.ShouldOmit(tt.namespace, tt.name))
		})
	}

	var nilOpts *Options
	assert.False(ttt, nilOpts.ShouldOmit("Game", "Secret"))
}

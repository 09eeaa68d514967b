package provider_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtsgen/internal/model"
	"github.com/cmmoran/dtsgen/pkg/options"
	"github.com/cmmoran/dtsgen/pkg/provider"
	"github.com/cmmoran/dtsgen/pkg/provider/metadata"
)

const doc = `
types:
  - {namespace: Game, name: Entity}
  - {namespace: Game, name: Secret}
  - {namespace: Game.Internal, name: Pool}
  - {namespace: Tools, name: Probe}
`

func names(types []model.Type) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, model.QualifiedName(t))
	}
	return out
}

func TestSeeds(ttt *testing.T) {
	p, err := metadata.Parse([]byte(doc))
	require.NoError(ttt, err)

	tests := []struct {
		name    string
		opts    *options.Options
		want    []string
		wantErr error
	}{
		{
			name: "every type by default",
			opts: &options.Options{},
			want: []string{"Game.Entity", "Game.Secret", "Game.Internal.Pool", "Tools.Probe"},
		},
		{
			name: "exclusions narrow the default",
			opts: &options.Options{
				ExcludeTypes:      []string{"secret"},
				ExcludeNamespaces: []string{"Game.Internal"},
			},
			want: []string{"Game.Entity", "Tools.Probe"},
		},
		{
			name: "explicit seeds keep their order",
			opts: &options.Options{Seeds: []string{"Tools.Probe", "Game.Entity"}},
			want: []string{"Tools.Probe", "Game.Entity"},
		},
		{
			name: "explicit seeds ignore exclusions",
			opts: &options.Options{Seeds: []string{"Game.Secret"}, ExcludeTypes: []string{"Secret"}},
			want: []string{"Game.Secret"},
		},
		{
			name:    "unknown seed",
			opts:    &options.Options{Seeds: []string{"Game.Missing"}},
			wantErr: provider.ErrUnknownSeed,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			got, err := provider.Seeds(p, tt.opts)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

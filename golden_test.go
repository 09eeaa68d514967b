package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtsgen/pkg/action/generate"
	. "github.com/cmmoran/dtsgen/pkg/options"
)

func TestGenerate(ttt *testing.T) {
	inDir := "testdata/fixtures"
	outDir := "testdata/expectations"
	type args struct {
		opts []Option
	}
	tests := []struct {
		name     string
		args     args
		expected string
		wantErr  bool
	}{
		{
			name: "generate with defaults",
			args: args{
				opts: []Option{
					WithInputs(filepath.Join(inDir, "unity.yaml")),
				},
			},
			expected: filepath.Join(outDir, "unity.d.ts"),
		},
		{
			name: "generate with seed and root namespace",
			args: args{
				opts: []Option{
					WithInputs(filepath.Join(inDir, "unity.yaml")),
					WithSeeds("UnityEngine.Component"),
					WithRootNamespace("Unity"),
				},
			},
			expected: filepath.Join(outDir, "unity_component.d.ts"),
		},
		{
			name: "generate with unknown seed",
			args: args{
				opts: []Option{
					WithInputs(filepath.Join(inDir, "unity.yaml")),
					WithSeeds("UnityEngine.Missing"),
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o, err := New(tt.args.opts...)
			require.NoError(t, err)

			got, err := generate.Render(afero.NewOsFs(), o)
			if (err != nil) != tt.wantErr {
				t.Errorf("Render() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			expectedBytes, err := os.ReadFile(tt.expected)
			require.NoError(t, err)
			diff := cmp.Diff(string(expectedBytes), got)
			if diff != "" {
				t.Logf("diff: %s", diff)
			}
			require.EqualValuesf(t, string(expectedBytes), got, "Render() diff = %s", diff)
		})
	}
}

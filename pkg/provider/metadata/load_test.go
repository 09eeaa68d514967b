package metadata

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtsgen/internal/model"
)

const colorYAML = `
assembly: Game
types:
  - namespace: Game
    name: Color
    kind: enum
    fields:
      - {name: Red, value: 1}
      - {name: Blue, value: 4}
`

const colorJSON = `{
  "assembly": "Game",
  "types": [
    {
      "namespace": "Game",
      "name": "Color",
      "kind": "enum",
      "fields": [{"name": "Red", "value": 1}, {"name": "Blue", "value": 4}]
    }
  ]
}`

const colorTOML = `
assembly = "Game"

[[types]]
namespace = "Game"
name = "Color"
kind = "enum"

[[types.fields]]
name = "Red"
value = 1

[[types.fields]]
name = "Blue"
value = 4
`

func TestDecodeFormats(ttt *testing.T) {
	tests := []struct {
		format string
		data   string
		value  any
	}{
		{FormatYAML, colorYAML, 1},
		{FormatJSON, colorJSON, json.Number("1")},
		{FormatTOML, colorTOML, int64(1)},
	}
	for _, tt := range tests {
		ttt.Run(tt.format, func(t *testing.T) {
			doc, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, doc.Types, 1)

			spec := doc.Types[0]
			assert.Equal(t, "Game", doc.Assembly)
			assert.Equal(t, "Color", spec.Name)
			assert.Equal(t, "enum", spec.Kind)
			require.Len(t, spec.Fields, 2)
			assert.Equal(t, tt.value, spec.Fields[0].Value)

			p, err := New(doc)
			require.NoError(t, err)
			color, ok := p.Lookup("Game.Color")
			require.True(t, ok)
			assert.Equal(t, model.KindEnum, color.Kind())
			assert.Equal(t, "Game!Game.Color", color.ID())

			f := color.Fields()[0]
			assert.True(t, f.IsStatic())
			assert.True(t, f.IsLiteral())
			assert.Same(t, color, f.Type(), "enum fields default to the enum type")
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte("x"), "xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFormatOf(ttt *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "dump.yaml", want: FormatYAML},
		{path: "dump.YML", want: FormatYAML},
		{path: "dir/dump.json", want: FormatJSON},
		{path: "dump.toml", want: FormatTOML},
		{path: "dump.xml", wantErr: true},
		{path: "dump", wantErr: true},
	}
	for _, tt := range tests {
		ttt.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dumps/core.yaml", []byte(`
assembly: Core
types:
  - namespace: Game
    name: Entity
    base: Game.Component
    methods:
      - name: Paint
        params: [{name: c, type: Game.Color}]
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/dumps/extra.json", []byte(`{
  "assembly": "Extra",
  "types": [
    {"namespace": "Game", "name": "Component"},
    {"namespace": "Game", "name": "Color", "kind": "enum"}
  ]
}`), 0o644))

	p, err := Load(fs, "/dumps/core.yaml", "/dumps/extra.json")
	require.NoError(t, err)

	var got []string
	for _, typ := range p.Types() {
		got = append(got, typ.ID())
	}
	assert.Equal(t, []string{"Core!Game.Entity", "Extra!Game.Component", "Extra!Game.Color"}, got)

	entity, ok := p.Lookup("Game.Entity")
	require.True(t, ok)
	component, _ := p.Lookup("Game.Component")
	assert.Same(t, component, entity.Base(), "references resolve across documents")

	paint := entity.Methods()[0]
	assert.Equal(t, "System.Void", model.QualifiedName(paint.ReturnType()))
	color, _ := p.Lookup("Game.Color")
	assert.Same(t, color, paint.Parameters()[0].Type())
}

func TestLoadErrors(ttt *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "unsupported extension",
			files:   map[string]string{"/d/dump.xml": "<types/>"},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "duplicate type",
			files:   map[string]string{"/d/dump.yaml": "types: [{namespace: A, name: B}, {namespace: A, name: B}]"},
			wantErr: ErrBadDocument,
		},
		{
			name:    "unknown kind",
			files:   map[string]string{"/d/dump.yaml": "types: [{namespace: A, name: B, kind: record}]"},
			wantErr: ErrBadDocument,
		},
		{
			name:    "unnamed type",
			files:   map[string]string{"/d/dump.yaml": "types: [{namespace: A}]"},
			wantErr: ErrBadDocument,
		},
		{
			name:    "bad reference",
			files:   map[string]string{"/d/dump.yaml": "types: [{namespace: A, name: B, base: 'A.List`1[A.C'}]"},
			wantErr: ErrBadTypeRef,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			var paths []string
			for path, data := range tt.files {
				require.NoError(t, afero.WriteFile(fs, path, []byte(data), 0o644))
				paths = append(paths, path)
			}
			_, err := Load(fs, paths...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}

	_, err := Load(afero.NewMemMapFs(), "/missing.yaml")
	require.Error(ttt, err)
}

func TestMethodDescriptors(t *testing.T) {
	p, err := Parse([]byte(`
types:
  - namespace: Game
    name: Box
    constructors:
      - params: [{name: size, type: System.Int32}]
    methods:
      - name: Map
        params: [{name: v, type: "!T"}]
`))
	require.NoError(t, err)
	box, _ := p.Lookup("Game.Box")

	ctor := box.Constructors()[0]
	assert.Equal(t, ".ctor", ctor.Name())
	assert.True(t, ctor.IsConstructor())
	assert.True(t, ctor.IsSpecialName())
	assert.Nil(t, ctor.ReturnType())

	m := box.Methods()[0]
	assert.True(t, m.ContainsGenericParameters(), "open parameters make the method generic")
}

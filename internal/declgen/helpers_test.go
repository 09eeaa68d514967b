package declgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtsgen/internal/model"
	"github.com/cmmoran/dtsgen/pkg/provider/metadata"
)

func mustProvider(t *testing.T, doc string) *metadata.Provider {
	t.Helper()
	p, err := metadata.Parse([]byte(doc))
	require.NoError(t, err)
	return p
}

func mustLookup(t *testing.T, p *metadata.Provider, name string) model.Type {
	t.Helper()
	typ, ok := p.Lookup(name)
	require.Truef(t, ok, "type %s not declared", name)
	return typ
}

// fieldTypes declares one probe class whose fields carry refs in order, and
// returns the resolved field types.
func fieldTypes(t *testing.T, refs ...string) []model.Type {
	t.Helper()
	spec := metadata.TypeSpec{Namespace: "Probe", Name: "Types"}
	for _, ref := range refs {
		spec.Fields = append(spec.Fields, metadata.FieldSpec{Name: ref, Type: ref})
	}
	p, err := metadata.New(&metadata.Document{
		Assembly: "Probe",
		Types: []metadata.TypeSpec{
			spec,
			{Namespace: "Game", Name: "Vector3", Kind: "struct"},
		},
	})
	require.NoError(t, err)

	probe := mustLookup(t, p, "Probe.Types")
	out := make([]model.Type, 0, len(refs))
	for _, f := range probe.Fields() {
		out = append(out, f.Type())
	}
	return out
}

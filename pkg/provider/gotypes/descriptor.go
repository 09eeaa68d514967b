package gotypes

import (
	"go/types"

	"github.com/cmmoran/dtsgen/internal/model"
)

// typeDesc implements model.Type over go/types. Members of named types are
// resolved on first access.
type typeDesc struct {
	p     *Provider
	named *types.Named

	id        string
	namespace string
	name      string
	kind      model.Kind

	generic         bool
	containsGeneric bool
	array           bool
	byRef           bool
	pointer         bool
	primitive       bool

	elem     model.Type
	args     []model.Type
	callback model.Callback

	loaded     bool
	base       model.Type
	interfaces []model.Type
	ctors      []model.Method
	methods    []model.Method
	fields     []model.Field
}

func (t *typeDesc) ID() string                      { return t.id }
func (t *typeDesc) Namespace() string               { return t.namespace }
func (t *typeDesc) Name() string                    { return t.name }
func (t *typeDesc) Kind() model.Kind                { return t.kind }
func (t *typeDesc) IsGeneric() bool                 { return t.generic }
func (t *typeDesc) ContainsGenericParameters() bool { return t.containsGeneric }
func (t *typeDesc) IsArray() bool                   { return t.array }
func (t *typeDesc) IsByRef() bool                   { return t.byRef }
func (t *typeDesc) IsPointer() bool                 { return t.pointer }
func (t *typeDesc) IsPrimitive() bool               { return t.primitive }
func (t *typeDesc) Elem() model.Type                { return t.elem }
func (t *typeDesc) GenericArgs() []model.Type       { return t.args }
func (t *typeDesc) Callback() model.Callback        { return t.callback }

func (t *typeDesc) Base() model.Type {
	t.load()
	return t.base
}

func (t *typeDesc) Interfaces() []model.Type {
	t.load()
	return t.interfaces
}

func (t *typeDesc) Constructors() []model.Method {
	t.load()
	return t.ctors
}

func (t *typeDesc) Methods() []model.Method {
	t.load()
	return t.methods
}

func (t *typeDesc) Fields() []model.Field {
	t.load()
	return t.fields
}

// Go has no properties or events.
func (t *typeDesc) Properties() []model.Property { return nil }
func (t *typeDesc) Events() []model.Event        { return nil }

func (t *typeDesc) load() {
	if t.loaded || t.named == nil {
		return
	}
	t.loaded = true
	t.p.populate(t)
}

type methodDesc struct {
	name        string
	constructor bool
	ret         model.Type
	params      []model.Parameter
}

func (m *methodDesc) Name() string                    { return m.name }
func (m *methodDesc) IsPublic() bool                  { return true }
func (m *methodDesc) IsStatic() bool                  { return false }
func (m *methodDesc) IsSpecialName() bool             { return m.constructor }
func (m *methodDesc) IsConstructor() bool             { return m.constructor }
func (m *methodDesc) ContainsGenericParameters() bool { return false }
func (m *methodDesc) ReturnType() model.Type          { return m.ret }
func (m *methodDesc) Parameters() []model.Parameter   { return m.params }

type paramDesc struct {
	name string
	typ  model.Type
	out  bool
}

func (p *paramDesc) Name() string     { return p.name }
func (p *paramDesc) Type() model.Type { return p.typ }
func (p *paramDesc) IsOut() bool      { return p.out }

type fieldDesc struct {
	name    string
	typ     model.Type
	literal bool
	value   any
}

func (f *fieldDesc) Name() string        { return f.name }
func (f *fieldDesc) Type() model.Type    { return f.typ }
func (f *fieldDesc) IsPublic() bool      { return true }
func (f *fieldDesc) IsStatic() bool      { return f.literal }
func (f *fieldDesc) IsLiteral() bool     { return f.literal }
func (f *fieldDesc) IsInitOnly() bool    { return false }
func (f *fieldDesc) IsSpecialName() bool { return false }
func (f *fieldDesc) Constant() any       { return f.value }

package metadata

import (
	"github.com/cmmoran/dtsgen/internal/model"
)

// typeDesc implements model.Type for declared and synthesized types.
type typeDesc struct {
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

	base       model.Type
	interfaces []model.Type
	ctors      []model.Method
	methods    []model.Method
	props      []model.Property
	fields     []model.Field
	events     []model.Event
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
func (t *typeDesc) Base() model.Type                { return t.base }
func (t *typeDesc) Interfaces() []model.Type        { return t.interfaces }
func (t *typeDesc) Constructors() []model.Method    { return t.ctors }
func (t *typeDesc) Methods() []model.Method         { return t.methods }
func (t *typeDesc) Properties() []model.Property    { return t.props }
func (t *typeDesc) Fields() []model.Field           { return t.fields }
func (t *typeDesc) Events() []model.Event           { return t.events }

type methodDesc struct {
	name        string
	public      bool
	static      bool
	special     bool
	constructor bool
	generic     bool
	ret         model.Type
	params      []model.Parameter
}

func (m *methodDesc) Name() string                    { return m.name }
func (m *methodDesc) IsPublic() bool                  { return m.public }
func (m *methodDesc) IsStatic() bool                  { return m.static }
func (m *methodDesc) IsSpecialName() bool             { return m.special }
func (m *methodDesc) IsConstructor() bool             { return m.constructor }
func (m *methodDesc) ContainsGenericParameters() bool { return m.generic }
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

type propDesc struct {
	name   string
	typ    model.Type
	getter *model.Accessor
	setter *model.Accessor
}

func (p *propDesc) Name() string            { return p.name }
func (p *propDesc) Type() model.Type        { return p.typ }
func (p *propDesc) Getter() *model.Accessor { return p.getter }
func (p *propDesc) Setter() *model.Accessor { return p.setter }

type fieldDesc struct {
	name     string
	typ      model.Type
	public   bool
	static   bool
	literal  bool
	initOnly bool
	special  bool
	value    any
}

func (f *fieldDesc) Name() string        { return f.name }
func (f *fieldDesc) Type() model.Type    { return f.typ }
func (f *fieldDesc) IsPublic() bool      { return f.public }
func (f *fieldDesc) IsStatic() bool      { return f.static }
func (f *fieldDesc) IsLiteral() bool     { return f.literal }
func (f *fieldDesc) IsInitOnly() bool    { return f.initOnly }
func (f *fieldDesc) IsSpecialName() bool { return f.special }
func (f *fieldDesc) Constant() any       { return f.value }

type eventDesc struct {
	name    string
	handler model.Type
}

func (e *eventDesc) Name() string            { return e.name }
func (e *eventDesc) HandlerType() model.Type { return e.handler }

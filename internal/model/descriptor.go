package model

// Kind classifies a host type.
type Kind int

const (
	KindInvalid   Kind = iota
	KindClass          // reference type
	KindStruct         // value type
	KindEnum           // named integral constants
	KindInterface      // contract only
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindInterface:
		return "interface"
	default:
		return "invalid"
	}
}

// Callback describes whether a type is one of the delegate shapes that map to
// target-language function types.
type Callback int

const (
	CallbackNone   Callback = iota
	CallbackAction          // no result; niladic when it carries no generic arguments
	CallbackFunc            // result carried as the leading generic argument
)

// Type is a read-only view of one host type. Implementations are supplied by a
// provider; the generator never mutates them.
type Type interface {
	// ID is the stable identity used for de-duplication
	// (namespace + name + assembly equivalent).
	ID() string
	Namespace() string
	Name() string
	Kind() Kind

	IsGeneric() bool
	// ContainsGenericParameters reports unresolved type parameters anywhere in the type.
	ContainsGenericParameters() bool
	IsArray() bool
	IsByRef() bool
	IsPointer() bool
	IsPrimitive() bool

	// Elem is the element of an array, by-ref or pointer type; nil otherwise.
	Elem() Type
	GenericArgs() []Type
	Callback() Callback

	Base() Type
	Interfaces() []Type

	Constructors() []Method
	Methods() []Method
	Properties() []Property
	Fields() []Field
	Events() []Event
}

// Method describes a method or constructor.
type Method interface {
	Name() string
	IsPublic() bool
	IsStatic() bool
	IsSpecialName() bool
	IsConstructor() bool
	ContainsGenericParameters() bool
	// ReturnType is nil for constructors.
	ReturnType() Type
	Parameters() []Parameter
}

// Parameter is a single method parameter. By-reference parameters have a
// Type() whose IsByRef reports true.
type Parameter interface {
	Name() string
	Type() Type
	IsOut() bool
}

// Accessor is one half of a property.
type Accessor struct {
	Static bool
}

type Property interface {
	Name() string
	Type() Type
	// Getter and Setter are nil when the property lacks that accessor.
	Getter() *Accessor
	Setter() *Accessor
}

type Field interface {
	Name() string
	Type() Type
	IsPublic() bool
	IsStatic() bool
	IsLiteral() bool
	IsInitOnly() bool
	IsSpecialName() bool
	// Constant is the raw literal value for literal fields, nil otherwise.
	Constant() any
}

type Event interface {
	Name() string
	HandlerType() Type
}

// IsEnum is shorthand for t.Kind() == KindEnum.
func IsEnum(t Type) bool { return t != nil && t.Kind() == KindEnum }

// IsInterface is shorthand for t.Kind() == KindInterface.
func IsInterface(t Type) bool { return t != nil && t.Kind() == KindInterface }

// QualifiedName spells t the way the host does: Namespace.Name, with "[]" for
// arrays and "&" for by-ref types appended to the element spelling.
func QualifiedName(t Type) string {
	switch {
	case t == nil:
		return ""
	case t.IsArray() && t.Elem() != nil:
		return QualifiedName(t.Elem()) + "[]"
	case t.IsByRef() && t.Elem() != nil:
		return QualifiedName(t.Elem()) + "&"
	case t.IsPointer() && t.Elem() != nil:
		return QualifiedName(t.Elem()) + "*"
	case t.Namespace() == "":
		return t.Name()
	default:
		return t.Namespace() + "." + t.Name()
	}
}

// RawType strips a by-ref marker.
func RawType(t Type) Type {
	if t != nil && t.IsByRef() && t.Elem() != nil {
		return t.Elem()
	}
	return t
}

// Package metadata provides type descriptors from host-side metadata dumps
// written as YAML, JSON or TOML.
//
// A dump lists the types a host exposes:
//
//	assembly: UnityEngine.CoreModule
//	types:
//	  - namespace: UnityEngine
//	    name: Vector3
//	    kind: struct
//	    base: System.ValueType
//	    constructors:
//	      - params: [{name: x, type: System.Single}]
//	    methods:
//	      - name: Dot
//	        static: true
//	        returns: System.Single
//	        params: [{name: lhs, type: UnityEngine.Vector3}, {name: rhs, type: UnityEngine.Vector3}]
//
// Type references are host spellings: Ns.Name, generic constructions
// Ns.Name`2[Arg1,Arg2], the suffixes [] (array), * (pointer) and & (by-ref),
// and !T for an unresolved generic parameter.
package metadata

// Document is one metadata dump.
type Document struct {
	Assembly string     `json:"assembly,omitempty" yaml:"assembly,omitempty" toml:"assembly,omitempty"`
	Types    []TypeSpec `json:"types,omitempty" yaml:"types,omitempty" toml:"types,omitempty"`
}

// TypeSpec declares one type. Kind is class (default), struct, enum or interface.
type TypeSpec struct {
	Namespace    string         `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Name         string         `json:"name" yaml:"name" toml:"name"`
	Kind         string         `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Generic      bool           `json:"generic,omitempty" yaml:"generic,omitempty" toml:"generic,omitempty"`
	Base         string         `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`
	Interfaces   []string       `json:"interfaces,omitempty" yaml:"interfaces,omitempty" toml:"interfaces,omitempty"`
	Constructors []MethodSpec   `json:"constructors,omitempty" yaml:"constructors,omitempty" toml:"constructors,omitempty"`
	Methods      []MethodSpec   `json:"methods,omitempty" yaml:"methods,omitempty" toml:"methods,omitempty"`
	Properties   []PropertySpec `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
	Fields       []FieldSpec    `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
	Events       []EventSpec    `json:"events,omitempty" yaml:"events,omitempty" toml:"events,omitempty"`
}

// MethodSpec declares a method or constructor. Returns defaults to System.Void.
type MethodSpec struct {
	Name    string      `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Private bool        `json:"private,omitempty" yaml:"private,omitempty" toml:"private,omitempty"`
	Static  bool        `json:"static,omitempty" yaml:"static,omitempty" toml:"static,omitempty"`
	Special bool        `json:"special,omitempty" yaml:"special,omitempty" toml:"special,omitempty"`
	Generic bool        `json:"generic,omitempty" yaml:"generic,omitempty" toml:"generic,omitempty"`
	Returns string      `json:"returns,omitempty" yaml:"returns,omitempty" toml:"returns,omitempty"`
	Params  []ParamSpec `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
}

type ParamSpec struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type string `json:"type" yaml:"type" toml:"type"`
	Out  bool   `json:"out,omitempty" yaml:"out,omitempty" toml:"out,omitempty"`
}

type AccessorSpec struct {
	Static bool `json:"static,omitempty" yaml:"static,omitempty" toml:"static,omitempty"`
}

// PropertySpec declares a property; a nil Get or Set means the accessor is absent.
type PropertySpec struct {
	Name string        `json:"name" yaml:"name" toml:"name"`
	Type string        `json:"type" yaml:"type" toml:"type"`
	Get  *AccessorSpec `json:"get,omitempty" yaml:"get,omitempty" toml:"get,omitempty"`
	Set  *AccessorSpec `json:"set,omitempty" yaml:"set,omitempty" toml:"set,omitempty"`
}

// FieldSpec declares a field. On enums Type defaults to the enum itself and a
// Value makes the field a static literal.
type FieldSpec struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Private  bool   `json:"private,omitempty" yaml:"private,omitempty" toml:"private,omitempty"`
	Static   bool   `json:"static,omitempty" yaml:"static,omitempty" toml:"static,omitempty"`
	Literal  bool   `json:"literal,omitempty" yaml:"literal,omitempty" toml:"literal,omitempty"`
	InitOnly bool   `json:"init_only,omitempty" yaml:"init_only,omitempty" toml:"init_only,omitempty"`
	Special  bool   `json:"special,omitempty" yaml:"special,omitempty" toml:"special,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

type EventSpec struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

package model

// ParamMode classifies how a parameter flows through a call.
type ParamMode int

const (
	ParamNil ParamMode = iota // ordinary, input only
	ParamRef                  // by-ref, input and output
	ParamOut                  // by-ref out, output only
)

func (m ParamMode) String() string {
	switch m {
	case ParamRef:
		return "Ref"
	case ParamOut:
		return "Out"
	default:
		return "Nil"
	}
}

// Param is one rendered input parameter.
type Param struct {
	Type string // target-language spelling
	Name string // source name
}

// Func is a rendered method, constructor or synthesized event accessor.
type Func struct {
	IsStatic bool
	Name     string
	In       []Param
	// Out holds 0 (void omitted), 1 (plain return) or more (tuple) spellings.
	Out []string
}

// Prop is a rendered property, field or enum constant.
type Prop struct {
	IsStatic   bool
	IsReadOnly bool
	Name       string
	Type       string
	Value      string // enum constants only
}

// Class is a class or const enum declaration.
type Class struct {
	Name        string
	IsEnum      bool
	ParentClass string
	Interfaces  []string
	Funcs       []*Func
	Props       []*Prop

	// Extracted is set once the member lists have been populated.
	Extracted bool
}

type Classes []*Class

func (x Classes) Find(name string) *Class {
	for _, c := range x {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Namespace is a node of the declaration tree. The root has an empty name.
type Namespace struct {
	Name    string
	Spaces  Namespaces
	Classes Classes
}

type Namespaces []*Namespace

func (x Namespaces) Find(name string) *Namespace {
	for _, s := range x {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// NewRoot returns an empty, unnamed root namespace.
func NewRoot() *Namespace {
	return &Namespace{}
}

// EnsurePath walks segments from n, inserting missing namespaces, and returns
// the last node. An empty path returns n itself.
func (n *Namespace) EnsurePath(segments []string) *Namespace {
	node := n
	for _, name := range segments {
		next := node.Spaces.Find(name)
		if next == nil {
			next = &Namespace{Name: name}
			node.Spaces = append(node.Spaces, next)
		}
		node = next
	}
	return node
}

// EnsureClass returns the class named name, creating it when absent. created
// reports whether a new node was inserted.
func (n *Namespace) EnsureClass(name string, isEnum bool) (c *Class, created bool) {
	if c = n.Classes.Find(name); c != nil {
		return c, false
	}
	c = &Class{Name: name, IsEnum: isEnum}
	n.Classes = append(n.Classes, c)
	return c, true
}

// Walk visits every class in render order (child namespaces before classes),
// passing the dotted namespace path of each.
func (n *Namespace) Walk(fn func(path string, c *Class)) {
	n.walk("", fn)
}

func (n *Namespace) walk(prefix string, fn func(string, *Class)) {
	path := prefix
	if n.Name != "" {
		if path != "" {
			path += "."
		}
		path += n.Name
	}
	for _, s := range n.Spaces {
		s.walk(path, fn)
	}
	for _, c := range n.Classes {
		fn(path, c)
	}
}

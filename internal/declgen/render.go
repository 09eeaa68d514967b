package declgen

import (
	"strings"

	"github.com/cmmoran/dtsgen/internal/model"
)

// Renderer emits the declaration tree as an ambient module.
type Renderer struct {
	RootNamespace string
	Indent        string
}

// Render returns the complete module text for root.
func (r Renderer) Render(root *model.Namespace) string {
	rootName := r.RootNamespace
	if rootName == "" {
		rootName = "CS"
	}
	var sb strings.Builder
	sb.WriteString("declare namespace ")
	sb.WriteString(rootName)
	r.space(&sb, root, 0)
	return sb.String()
}

func (r Renderer) ident(count int) string {
	indent := r.Indent
	if indent == "" {
		indent = "    "
	}
	return strings.Repeat(indent, count)
}

func (r Renderer) space(sb *strings.Builder, n *model.Namespace, depth int) {
	if n.Name != "" {
		sb.WriteString(r.ident(depth))
		sb.WriteString("namespace ")
		sb.WriteString(n.Name)
	}
	sb.WriteString("\n")
	sb.WriteString(r.ident(depth))
	sb.WriteString("{\n")

	for _, s := range n.Spaces {
		r.space(sb, s, depth+1)
	}
	for _, c := range n.Classes {
		r.class(sb, c, depth+1)
	}

	sb.WriteString(r.ident(depth))
	sb.WriteString("}\n")
}

func (r Renderer) class(sb *strings.Builder, c *model.Class, depth int) {
	sb.WriteString(r.ident(depth))
	if c.IsEnum {
		sb.WriteString("const enum ")
		sb.WriteString(c.Name)
	} else {
		sb.WriteString("class ")
		sb.WriteString(c.Name)
		if c.ParentClass != "" {
			sb.WriteString(" extends ")
			sb.WriteString(c.ParentClass)
		}
		if len(c.Interfaces) != 0 {
			sb.WriteString(" implements ")
			sb.WriteString(strings.Join(c.Interfaces, ", "))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(r.ident(depth))
	sb.WriteString("{\n")

	for _, f := range c.Funcs {
		sb.WriteString(r.ident(depth + 1))
		sb.WriteString(Signature(f))
		sb.WriteString("\n")
	}

	for _, p := range c.Props {
		sb.WriteString(r.ident(depth + 1))
		if c.IsEnum {
			sb.WriteString(p.Name)
			sb.WriteString(" = ")
			sb.WriteString(p.Value)
			sb.WriteString(",\n")
			continue
		}
		if p.IsStatic {
			sb.WriteString("static ")
		}
		if p.IsReadOnly {
			sb.WriteString("readonly ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(" : ")
		sb.WriteString(p.Type)
		sb.WriteString(";\n")
	}

	sb.WriteString(r.ident(depth))
	sb.WriteString("}\n")
}

// Signature spells one method line, including the trailing semicolon.
func Signature(f *model.Func) string {
	var sb strings.Builder
	if f.IsStatic {
		sb.WriteString("static ")
	}
	sb.WriteString(f.Name)
	sb.WriteString("(")
	for i, p := range f.In {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type)
	}
	sb.WriteString(")")

	switch {
	case len(f.Out) == 1:
		sb.WriteString(": ")
		sb.WriteString(f.Out[0])
	case len(f.Out) > 1:
		sb.WriteString(": [")
		sb.WriteString(strings.Join(f.Out, ", "))
		sb.WriteString("]")
	}

	sb.WriteString(";")
	return sb.String()
}

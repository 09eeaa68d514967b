package metadata

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtsgen/internal/model"
)

var ErrBadTypeRef = errors.New("malformed type reference")

// primitives are the host types reported as primitive.
var primitives = map[string]bool{
	"System.Boolean": true,
	"System.Byte":    true,
	"System.SByte":   true,
	"System.Int16":   true,
	"System.UInt16":  true,
	"System.Int32":   true,
	"System.UInt32":  true,
	"System.Int64":   true,
	"System.UInt64":  true,
	"System.IntPtr":  true,
	"System.UIntPtr": true,
	"System.Char":    true,
	"System.Double":  true,
	"System.Single":  true,
}

const (
	actionName = "System.Action"
	funcName   = "System.Func"
)

// registry resolves reference strings to descriptors. Declared types win;
// everything else is synthesized once per spelling.
type registry struct {
	declared map[string]*typeDesc
	refs     map[string]*typeDesc
}

func newRegistry() *registry {
	return &registry{
		declared: make(map[string]*typeDesc),
		refs:     make(map[string]*typeDesc),
	}
}

// resolve parses ref and returns its descriptor.
func (r *registry) resolve(ref string) (*typeDesc, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.Wrap(ErrBadTypeRef, "empty reference")
	}
	if t, ok := r.declared[ref]; ok {
		return t, nil
	}
	if t, ok := r.refs[ref]; ok {
		return t, nil
	}

	t, err := r.parse(ref)
	if err != nil {
		return nil, err
	}
	r.refs[ref] = t
	return t, nil
}

func (r *registry) parse(ref string) (*typeDesc, error) {
	// Suffixes wrap outwards: Int32[]& is a by-ref array of Int32.
	switch {
	case strings.HasSuffix(ref, "[]"):
		return r.wrap(ref, strings.TrimSuffix(ref, "[]"), func(t *typeDesc) { t.array = true })
	case strings.HasSuffix(ref, "&"):
		return r.wrap(ref, strings.TrimSuffix(ref, "&"), func(t *typeDesc) { t.byRef = true })
	case strings.HasSuffix(ref, "*"):
		return r.wrap(ref, strings.TrimSuffix(ref, "*"), func(t *typeDesc) { t.pointer = true })
	}

	if strings.HasPrefix(ref, "!") {
		name := ref[1:]
		if !isIdent(name) {
			return nil, errors.Wrapf(ErrBadTypeRef, "%q", ref)
		}
		return &typeDesc{id: ref, name: name, kind: model.KindClass, containsGeneric: true}, nil
	}

	base, argRefs, err := splitGeneric(ref)
	if err != nil {
		return nil, err
	}
	ns, name, err := splitQualified(base)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", ref)
	}

	t := &typeDesc{
		id:        ref,
		namespace: ns,
		name:      name,
		kind:      model.KindClass,
		primitive: primitives[base],
	}
	if t.primitive {
		t.kind = model.KindStruct
	}

	if argRefs == nil {
		if base == actionName {
			t.callback = model.CallbackAction
		}
		return t, nil
	}

	t.generic = true
	if def, ok := r.declared[base]; ok {
		t.kind = def.kind
	}
	for _, a := range argRefs {
		at, err := r.resolve(a)
		if err != nil {
			return nil, err
		}
		t.args = append(t.args, at)
		t.containsGeneric = t.containsGeneric || at.containsGeneric
	}

	switch {
	case strings.HasPrefix(base, actionName+"`"):
		t.callback = model.CallbackAction
	case strings.HasPrefix(base, funcName+"`"):
		// The host lists the result last; descriptors carry it first.
		t.callback = model.CallbackFunc
		last := len(t.args) - 1
		t.args = append([]model.Type{t.args[last]}, t.args[:last]...)
	}
	return t, nil
}

func (r *registry) wrap(ref, inner string, mark func(*typeDesc)) (*typeDesc, error) {
	elem, err := r.resolve(inner)
	if err != nil {
		return nil, err
	}
	t := &typeDesc{
		id:              ref,
		namespace:       elem.namespace,
		name:            elem.name,
		kind:            model.KindClass,
		containsGeneric: elem.containsGeneric,
		elem:            elem,
	}
	mark(t)
	return t, nil
}

// splitGeneric separates Ns.Name`2[A,B] into Ns.Name`2 and its argument
// spellings. Non-generic references return nil arguments.
func splitGeneric(ref string) (string, []string, error) {
	tick := strings.IndexByte(ref, '`')
	if tick < 0 {
		if strings.ContainsAny(ref, "[],") {
			return "", nil, errors.Wrapf(ErrBadTypeRef, "%q", ref)
		}
		return ref, nil, nil
	}

	open := strings.IndexByte(ref, '[')
	if open < 0 {
		// an open generic definition such as List`1
		return ref, nil, nil
	}
	if open < tick || !strings.HasSuffix(ref, "]") {
		return "", nil, errors.Wrapf(ErrBadTypeRef, "%q", ref)
	}

	var (
		args  []string
		depth int
		start = open + 1
	)
	inner := ref[:len(ref)-1]
	for i := open + 1; i < len(inner); i++ {
		switch inner[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return "", nil, errors.Wrapf(ErrBadTypeRef, "unbalanced brackets in %q", ref)
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return "", nil, errors.Wrapf(ErrBadTypeRef, "unbalanced brackets in %q", ref)
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	for _, a := range args {
		if a == "" {
			return "", nil, errors.Wrapf(ErrBadTypeRef, "empty generic argument in %q", ref)
		}
	}
	return ref[:open], args, nil
}

// splitQualified splits Ns.Sub.Name at its last dot.
func splitQualified(qualified string) (ns, name string, err error) {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		ns, name = qualified[:i], qualified[i+1:]
	} else {
		name = qualified
	}
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", "", ErrBadTypeRef
	}
	return ns, name, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}

// Package gotypes provides type descriptors for the exported surface of Go
// packages, loaded with golang.org/x/tools/go/packages.
package gotypes

import (
	"fmt"
	"go/constant"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/dtsgen/internal/model"
)

var ErrLoad = errors.New("load go packages")

// hostNamespace is where Go basic types are spelled, matching the keyword table.
const hostNamespace = "System"

// basics maps Go basic kinds to host primitive names.
var basics = map[types.BasicKind]string{
	types.Bool:    "Boolean",
	types.String:  "String",
	types.Int:     "Int64",
	types.Int8:    "SByte",
	types.Int16:   "Int16",
	types.Int32:   "Int32",
	types.Int64:   "Int64",
	types.Uint:    "UInt64",
	types.Uint8:   "Byte",
	types.Uint16:  "UInt16",
	types.Uint32:  "UInt32",
	types.Uint64:  "UInt64",
	types.Uintptr: "UIntPtr",
	types.Float32: "Single",
	types.Float64: "Double",
}

// Config selects the packages to load.
type Config struct {
	Dir              string
	Patterns         []string
	TrimModulePrefix bool
}

// Provider serves the named types of a set of loaded packages.
type Provider struct {
	prefix string

	declared []*typeDesc
	byName   map[string]*typeDesc
	named    map[*types.TypeName]*typeDesc
	ifaces   []*types.Named
}

// Load runs packages.Load for cfg and indexes every exported, non-generic
// named type.
func Load(cfg Config) (*Provider, error) {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  cfg.Dir,
	}, patterns...)
	if err != nil {
		return nil, errors.Wrapf(ErrLoad, "%v: %s", patterns, err)
	}
	if len(pkgs) == 0 {
		return nil, errors.Wrapf(ErrLoad, "no packages found for %v", patterns)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.WithDetailf(
				errors.Wrapf(ErrLoad, "package %s", pkg.PkgPath),
				"errors: %v", pkg.Errors,
			)
		}
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })

	p := &Provider{
		byName: make(map[string]*typeDesc),
		named:  make(map[*types.TypeName]*typeDesc),
	}
	if cfg.TrimModulePrefix {
		if p.prefix, err = modulePath(cfg.Dir); err != nil {
			return nil, err
		}
	}

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !tn.Exported() || tn.IsAlias() {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, ok := named.Underlying().(*types.Interface); ok {
				p.ifaces = append(p.ifaces, named)
			}
			t, ok := p.convert(named).(*typeDesc)
			if !ok || t.generic {
				continue
			}
			p.declared = append(p.declared, t)
			p.byName[model.QualifiedName(t)] = t
		}
	}
	return p, nil
}

// Types returns the declared types ordered by package path, then name.
func (p *Provider) Types() []model.Type {
	out := make([]model.Type, len(p.declared))
	for i, t := range p.declared {
		out[i] = t
	}
	return out
}

func (p *Provider) Lookup(qualifiedName string) (model.Type, bool) {
	t, ok := p.byName[qualifiedName]
	if !ok {
		return nil, false
	}
	return t, true
}

// Namespace turns a package path into a dotted namespace.
func (p *Provider) Namespace(pkg *types.Package) string {
	if pkg == nil {
		return ""
	}
	path := pkg.Path()
	if p.prefix != "" {
		switch {
		case path == p.prefix:
			path = pkg.Name()
		case strings.HasPrefix(path, p.prefix+"/"):
			path = strings.TrimPrefix(path, p.prefix+"/")
		}
	}
	path = strings.NewReplacer("/", ".", "-", "_").Replace(path)
	return path
}

// convert maps a Go type to its descriptor. Pointers are transparent.
func (p *Provider) convert(typ types.Type) model.Type {
	typ = types.Unalias(typ)

	switch u := typ.(type) {
	case *types.Basic:
		return p.basic(u)

	case *types.Pointer:
		return p.convert(u.Elem())

	case *types.Slice:
		return p.array(u.Elem())

	case *types.Array:
		return p.array(u.Elem())

	case *types.Signature:
		return p.callback(u)

	case *types.TypeParam:
		return &typeDesc{id: "go!" + u.Obj().Name(), name: u.Obj().Name(), kind: model.KindClass, containsGeneric: true}

	case *types.Named:
		return p.namedDesc(u)

	default:
		// maps, chans, anonymous structs and interfaces have no declaration
		return &typeDesc{id: "go!" + typ.String(), name: "any", kind: model.KindClass, generic: true}
	}
}

func (p *Provider) basic(b *types.Basic) model.Type {
	if b.Kind() == types.UnsafePointer {
		return &typeDesc{id: "go!unsafe.Pointer", namespace: "unsafe", name: "Pointer", kind: model.KindStruct, pointer: true}
	}
	if b.Info()&types.IsUntyped != 0 {
		if d, ok := types.Default(b).(*types.Basic); ok && d != b {
			b = d
		}
	}
	name, ok := basics[b.Kind()]
	if !ok {
		return &typeDesc{id: "go!" + b.Name(), name: b.Name(), kind: model.KindStruct, generic: true}
	}
	return &typeDesc{
		id:        "go!" + hostNamespace + "." + name,
		namespace: hostNamespace,
		name:      name,
		kind:      model.KindStruct,
		primitive: b.Kind() != types.String,
	}
}

func (p *Provider) array(elem types.Type) model.Type {
	e := p.convert(elem)
	return &typeDesc{
		id:              e.ID() + "[]",
		namespace:       e.Namespace(),
		name:            e.Name(),
		kind:            model.KindClass,
		array:           true,
		containsGeneric: e.ContainsGenericParameters(),
		elem:            e,
	}
}

func (p *Provider) callback(sig *types.Signature) model.Type {
	params := make([]model.Type, 0, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		params = append(params, p.convert(sig.Params().At(i).Type()))
	}
	results := p.results(sig)

	t := &typeDesc{id: "go!" + sig.String(), namespace: hostNamespace, kind: model.KindClass, generic: true}
	switch {
	case len(results) == 0 && len(params) == 0:
		t.name, t.generic, t.callback = "Action", false, model.CallbackAction
		t.id = "go!System.Action"
	case len(results) == 0:
		t.name, t.callback, t.args = "Action`"+strconv.Itoa(len(params)), model.CallbackAction, params
	case len(results) == 1:
		t.name, t.callback = "Func`"+strconv.Itoa(len(params)+1), model.CallbackFunc
		t.args = append([]model.Type{results[0]}, params...)
	default:
		t.name = "Tuple`" + strconv.Itoa(len(results))
	}
	return t
}

// results converts a signature's results, dropping a trailing error.
func (p *Provider) results(sig *types.Signature) []model.Type {
	n := sig.Results().Len()
	if n > 0 && isErrorType(sig.Results().At(n-1).Type()) {
		n--
	}
	out := make([]model.Type, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, p.convert(sig.Results().At(i).Type()))
	}
	return out
}

func (p *Provider) namedDesc(named *types.Named) model.Type {
	obj := named.Obj()
	if t, ok := p.named[obj]; ok {
		return t
	}

	ns := p.Namespace(obj.Pkg())
	t := &typeDesc{
		p:         p,
		named:     named,
		namespace: ns,
		name:      obj.Name(),
		kind:      model.KindClass,
		generic:   named.TypeArgs().Len() > 0 || named.TypeParams().Len() > 0,
	}
	t.id = "go!" + model.QualifiedName(t)
	if named.TypeArgs().Len() > 0 {
		// instantiations share the origin's object
		t.id += "[" + named.TypeArgs().At(0).String() + "]"
		return t
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		t.kind = model.KindStruct
	case *types.Interface:
		t.kind = model.KindInterface
	case *types.Basic:
		if u.Info()&types.IsInteger != 0 && len(enumConstants(named)) > 0 {
			t.kind = model.KindEnum
		}
	}
	if obj.Pkg() == nil {
		// universe types such as error carry no members
		t.named = nil
	}

	p.named[obj] = t
	return t
}

// populate resolves the members of a named type.
func (p *Provider) populate(t *typeDesc) {
	named := t.named

	switch t.kind {
	case model.KindEnum:
		for _, c := range enumConstants(named) {
			f := &fieldDesc{name: c.Name(), typ: t, literal: true}
			if v, ok := constant.Int64Val(c.Val()); ok {
				f.value = v
			} else if v, ok := constant.Uint64Val(c.Val()); ok {
				f.value = v
			} else {
				f.value = c.Val().ExactString()
			}
			t.fields = append(t.fields, f)
		}
		return

	case model.KindInterface:
		iface := named.Underlying().(*types.Interface)
		for i := 0; i < iface.NumMethods(); i++ {
			fn := iface.Method(i)
			if fn.Exported() {
				t.methods = append(t.methods, p.method(fn.Name(), fn.Type().(*types.Signature), false))
			}
		}
		return
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if f.Embedded() {
				if base := p.convert(f.Type()); t.base == nil && !model.IsInterface(base) {
					t.base = base
				}
				continue
			}
			if f.Exported() {
				t.fields = append(t.fields, &fieldDesc{name: f.Name(), typ: p.convert(f.Type())})
			}
		}
	}

	if ctor := constructorFor(named); ctor != nil {
		t.ctors = append(t.ctors, p.method(".ctor", ctor.Type().(*types.Signature), true))
	}

	ptr := types.NewPointer(named)
	mset := types.NewMethodSet(ptr)
	for i := 0; i < mset.Len(); i++ {
		sel := mset.At(i)
		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		// Only include methods directly defined on this type (not promoted)
		if len(sel.Index()) > 1 {
			continue
		}
		t.methods = append(t.methods, p.method(fn.Name(), fn.Type().(*types.Signature), false))
	}

	for _, iface := range p.ifaces {
		it, ok := iface.Underlying().(*types.Interface)
		if !ok || iface == named || it.NumMethods() == 0 {
			continue
		}
		if types.Implements(ptr, it) {
			t.interfaces = append(t.interfaces, p.convert(iface))
		}
	}
}

// method builds a descriptor from a signature. Results past the first become
// out parameters.
func (p *Provider) method(name string, sig *types.Signature, ctor bool) *methodDesc {
	m := &methodDesc{name: name, constructor: ctor}

	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		pname := v.Name()
		if pname == "" || pname == "_" {
			pname = fmt.Sprintf("arg%d", i)
		}
		m.params = append(m.params, &paramDesc{name: pname, typ: p.convert(v.Type())})
	}

	if ctor {
		return m
	}

	results := p.results(sig)
	if len(results) == 0 {
		m.ret = p.void()
		return m
	}
	m.ret = results[0]
	for i, r := range results[1:] {
		m.params = append(m.params, &paramDesc{
			name: fmt.Sprintf("result%d", i+1),
			typ:  byRef(r),
			out:  true,
		})
	}
	return m
}

func (p *Provider) void() model.Type {
	return &typeDesc{id: "go!System.Void", namespace: hostNamespace, name: "Void", kind: model.KindStruct}
}

func byRef(elem model.Type) model.Type {
	return &typeDesc{
		id:              elem.ID() + "&",
		namespace:       elem.Namespace(),
		name:            elem.Name(),
		kind:            model.KindClass,
		byRef:           true,
		containsGeneric: elem.ContainsGenericParameters(),
		elem:            elem,
	}
}

// enumConstants returns the package constants typed as named, in source order.
func enumConstants(named *types.Named) []*types.Const {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}
	var out []*types.Const
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !c.Exported() || !types.Identical(c.Type(), named) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos() < out[j].Pos() })
	return out
}

// constructorFor finds New<Name> returning the type or a pointer to it.
func constructorFor(named *types.Named) *types.Func {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}
	fn, ok := pkg.Scope().Lookup("New" + named.Obj().Name()).(*types.Func)
	if !ok {
		return nil
	}
	sig := fn.Type().(*types.Signature)
	if sig.Results().Len() == 0 {
		return nil
	}
	res := sig.Results().At(0).Type()
	if ptr, ok := res.(*types.Pointer); ok {
		res = ptr.Elem()
	}
	if !types.Identical(res, named) {
		return nil
	}
	return fn
}

func isErrorType(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// modulePath reads the module path from the go.mod governing dir.
func modulePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolve module directory")
	}
	for d := abs; ; d = filepath.Dir(d) {
		path := filepath.Join(d, "go.mod")
		data, err := os.ReadFile(path)
		if err == nil {
			f, err := modfile.ParseLax(path, data, nil)
			if err != nil {
				return "", errors.Wrapf(err, "parse %s", path)
			}
			if f.Module == nil {
				return "", errors.Newf("%s declares no module", path)
			}
			return f.Module.Mod.Path, nil
		}
		if filepath.Dir(d) == d {
			break
		}
	}
	return "", errors.Wrapf(ErrLoad, "no go.mod found above %s", abs)
}

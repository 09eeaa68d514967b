package metadata

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/dtsgen/internal/model"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported metadata format")
	ErrBadDocument       = errors.New("invalid metadata document")
)

// Format names accepted by Decode.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Provider serves the types declared by one or more documents.
type Provider struct {
	types []*typeDesc
	reg   *registry
}

// FormatOf picks a format from a file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// Decode parses a single document.
func Decode(data []byte, format string) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "unmarshal yaml metadata")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "unmarshal json metadata")
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, errors.Wrap(err, "unmarshal toml metadata")
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return &doc, nil
}

// Load reads every path from fs and builds a Provider over all of them.
func Load(fs afero.Fs, paths ...string) (*Provider, error) {
	docs := make([]*Document, 0, len(paths))
	for _, path := range paths {
		format, err := FormatOf(path)
		if err != nil {
			return nil, err
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "read metadata %s", path)
		}
		doc, err := Decode(data, format)
		if err != nil {
			return nil, errors.WithDetailf(err, "file: %s", path)
		}
		docs = append(docs, doc)
	}
	return New(docs...)
}

// Parse is a convenience for a single in-memory YAML document.
func Parse(data []byte) (*Provider, error) {
	doc, err := Decode(data, FormatYAML)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// New resolves docs into descriptors. All types are registered before any
// member is resolved, so references may point forward and across documents.
func New(docs ...*Document) (*Provider, error) {
	p := &Provider{reg: newRegistry()}

	specs := make([]*TypeSpec, 0)
	for _, doc := range docs {
		for i := range doc.Types {
			spec := &doc.Types[i]
			t, err := declare(doc.Assembly, spec)
			if err != nil {
				return nil, err
			}
			key := model.QualifiedName(t)
			if _, dup := p.reg.declared[key]; dup {
				return nil, errors.Wrapf(ErrBadDocument, "type %s declared twice", key)
			}
			p.reg.declared[key] = t
			p.types = append(p.types, t)
			specs = append(specs, spec)
		}
	}

	for i, t := range p.types {
		if err := p.populate(t, specs[i]); err != nil {
			return nil, errors.Wrapf(err, "type %s", model.QualifiedName(t))
		}
	}
	return p, nil
}

// Types returns the declared types in document order.
func (p *Provider) Types() []model.Type {
	out := make([]model.Type, len(p.types))
	for i, t := range p.types {
		out[i] = t
	}
	return out
}

// Lookup finds a declared type by qualified name.
func (p *Provider) Lookup(qualifiedName string) (model.Type, bool) {
	t, ok := p.reg.declared[qualifiedName]
	if !ok {
		return nil, false
	}
	return t, true
}

func declare(assembly string, spec *TypeSpec) (*typeDesc, error) {
	if spec.Name == "" {
		return nil, errors.Wrapf(ErrBadDocument, "unnamed type in namespace %q", spec.Namespace)
	}
	kind, err := parseKind(spec.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "type %s", spec.Name)
	}
	t := &typeDesc{
		namespace: spec.Namespace,
		name:      spec.Name,
		kind:      kind,
		generic:   spec.Generic,
	}
	t.id = assembly + "!" + model.QualifiedName(t)
	t.primitive = primitives[model.QualifiedName(t)]
	if t.name == "Action" && t.namespace == "System" {
		t.callback = model.CallbackAction
	}
	return t, nil
}

func parseKind(kind string) (model.Kind, error) {
	switch strings.ToLower(kind) {
	case "", "class":
		return model.KindClass, nil
	case "struct":
		return model.KindStruct, nil
	case "enum":
		return model.KindEnum, nil
	case "interface":
		return model.KindInterface, nil
	default:
		return model.KindInvalid, errors.Wrapf(ErrBadDocument, "unknown kind %q", kind)
	}
}

func (p *Provider) populate(t *typeDesc, spec *TypeSpec) error {
	var err error
	if spec.Base != "" {
		if t.base, err = p.ref(spec.Base); err != nil {
			return err
		}
	}
	for _, ref := range spec.Interfaces {
		it, err := p.ref(ref)
		if err != nil {
			return err
		}
		t.interfaces = append(t.interfaces, it)
	}

	for i := range spec.Constructors {
		m, err := p.method(&spec.Constructors[i], true)
		if err != nil {
			return err
		}
		t.ctors = append(t.ctors, m)
	}
	for i := range spec.Methods {
		m, err := p.method(&spec.Methods[i], false)
		if err != nil {
			return err
		}
		t.methods = append(t.methods, m)
	}

	for _, ps := range spec.Properties {
		pt, err := p.ref(ps.Type)
		if err != nil {
			return errors.Wrapf(err, "property %s", ps.Name)
		}
		prop := &propDesc{name: ps.Name, typ: pt}
		if ps.Get != nil {
			prop.getter = &model.Accessor{Static: ps.Get.Static}
		}
		if ps.Set != nil {
			prop.setter = &model.Accessor{Static: ps.Set.Static}
		}
		t.props = append(t.props, prop)
	}

	for _, fspec := range spec.Fields {
		ref := fspec.Type
		if ref == "" && t.kind == model.KindEnum {
			ref = model.QualifiedName(t)
		}
		ft, err := p.ref(ref)
		if err != nil {
			return errors.Wrapf(err, "field %s", fspec.Name)
		}
		f := &fieldDesc{
			name:     fspec.Name,
			typ:      ft,
			public:   !fspec.Private,
			static:   fspec.Static,
			literal:  fspec.Literal,
			initOnly: fspec.InitOnly,
			special:  fspec.Special,
			value:    fspec.Value,
		}
		if t.kind == model.KindEnum && fspec.Value != nil {
			f.static, f.literal = true, true
		}
		t.fields = append(t.fields, f)
	}

	for _, es := range spec.Events {
		ht, err := p.ref(es.Type)
		if err != nil {
			return errors.Wrapf(err, "event %s", es.Name)
		}
		t.events = append(t.events, &eventDesc{name: es.Name, handler: ht})
	}
	return nil
}

func (p *Provider) method(spec *MethodSpec, ctor bool) (*methodDesc, error) {
	m := &methodDesc{
		name:        spec.Name,
		public:      !spec.Private,
		static:      spec.Static,
		special:     spec.Special,
		constructor: ctor,
		generic:     spec.Generic,
	}
	if ctor {
		m.name, m.special = ".ctor", true
	} else {
		ret := spec.Returns
		if ret == "" {
			ret = "System.Void"
		}
		rt, err := p.ref(ret)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", spec.Name)
		}
		m.ret = rt
	}

	for _, ps := range spec.Params {
		pt, err := p.ref(ps.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s parameter %s", m.name, ps.Name)
		}
		m.params = append(m.params, &paramDesc{name: ps.Name, typ: pt, out: ps.Out})
		m.generic = m.generic || pt.ContainsGenericParameters()
	}
	return m, nil
}

// ref resolves a reference as a model.Type, keeping nil out of the interface.
func (p *Provider) ref(ref string) (model.Type, error) {
	t, err := p.reg.resolve(ref)
	if err != nil {
		return nil, err
	}
	return t, nil
}

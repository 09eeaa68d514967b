package declgen

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/dtsgen/internal/model"
)

// OpRemap rewrites host constructor and operator method names.
var OpRemap = map[string]string{
	".ctor":              "constructor",
	"op_Addition":        "__add",
	"op_Subtraction":     "__sub",
	"op_Multiply":        "__mul",
	"op_Division":        "__div",
	"op_Modulus":         "__mod",
	"op_UnaryNegation":   "__unm",
	"op_Equality":        "__eq",
	"op_LessThan":        "__lt",
	"op_LessThanOrEqual": "__le",
}

// operatorPrefix marks special-name methods that are operator overloads.
const operatorPrefix = "op_"

// Literal first arguments of the synthesized event accessors.
const (
	EventAdd    = `"+"`
	EventRemove = `"-"`
)

// RemapName applies OpRemap; unmapped names pass through.
func RemapName(name string) string {
	if dst, ok := OpRemap[name]; ok {
		return dst
	}
	return name
}

// extractor turns members into declaration entries. Every referenced type is
// handed to push.
type extractor struct {
	mapper *NameMapper
	push   func(model.Type)
}

// checkMethodValid reports whether m can be represented in the target.
func checkMethodValid(m model.Method) bool {
	if !m.IsPublic() || m.ContainsGenericParameters() {
		return false
	}

	if m.IsSpecialName() && !m.IsConstructor() && !strings.HasPrefix(m.Name(), operatorPrefix) {
		return false
	}

	if ret := m.ReturnType(); ret != nil {
		if ret.ContainsGenericParameters() || ret.IsGeneric() || ret.IsPointer() || model.IsInterface(ret) {
			return false
		}
	}

	for _, p := range m.Parameters() {
		pt := p.Type()
		if pt == nil {
			return false
		}
		if pt.ContainsGenericParameters() || pt.IsPointer() || model.IsInterface(pt) {
			return false
		}
		if pt.IsGeneric() && pt.Callback() == model.CallbackNone {
			return false
		}
	}
	return true
}

// paramMode classifies a parameter by its by-ref marker and out modifier.
func paramMode(p model.Parameter) model.ParamMode {
	if !p.Type().IsByRef() {
		return model.ParamNil
	}
	if p.IsOut() {
		return model.ParamOut
	}
	return model.ParamRef
}

func (x *extractor) methods(c *model.Class, methods []model.Method) {
	for _, m := range methods {
		if !checkMethodValid(m) {
			continue
		}

		f := &model.Func{
			IsStatic: m.IsStatic(),
			Name:     RemapName(m.Name()),
		}

		if ret := m.ReturnType(); ret != nil && !m.IsConstructor() {
			f.Out = append(f.Out, x.mapper.MapType(ret))
			x.push(model.RawType(ret))
		}

		for i, p := range m.Parameters() {
			raw := model.RawType(p.Type())
			spelled := x.mapper.MapType(raw)
			mode := paramMode(p)
			if mode == model.ParamNil || mode == model.ParamRef {
				name := p.Name()
				if name == "" {
					name = "arg" + strconv.Itoa(i)
				}
				f.In = append(f.In, model.Param{Type: spelled, Name: name})
			}
			if mode == model.ParamOut || mode == model.ParamRef {
				f.Out = append(f.Out, spelled)
			}
			x.push(raw)
		}

		// A void method with out-values returns only the out-values.
		if len(f.Out) > 1 && f.Out[0] == KeywordVoid {
			f.Out = f.Out[1:]
		}

		c.Funcs = append(c.Funcs, f)
	}
}

func (x *extractor) properties(c *model.Class, props []model.Property) {
	for _, p := range props {
		get, set := p.Getter(), p.Setter()
		c.Props = append(c.Props, &model.Prop{
			IsReadOnly: get != nil,
			IsStatic:   (get != nil && get.Static) || (set != nil && set.Static),
			Name:       p.Name(),
			Type:       x.mapper.MapType(p.Type()),
		})
		x.push(p.Type())
	}
}

func (x *extractor) events(c *model.Class, events []model.Event) {
	for _, e := range events {
		handler := x.mapper.MapType(model.RawType(e.HandlerType()))
		for _, marker := range []string{EventAdd, EventRemove} {
			c.Funcs = append(c.Funcs, &model.Func{
				Name: e.Name(),
				In: []model.Param{
					{Type: marker, Name: "event"},
					{Type: handler, Name: "call"},
				},
				Out: []string{KeywordVoid},
			})
		}
		x.push(e.HandlerType())
	}
}

func (x *extractor) fields(c *model.Class, fields []model.Field) error {
	for _, f := range fields {
		if !f.IsPublic() || (c.IsEnum && f.IsSpecialName()) {
			continue
		}

		p := &model.Prop{
			IsReadOnly: f.IsLiteral() || f.IsInitOnly(),
			IsStatic:   f.IsStatic(),
			Name:       f.Name(),
			Type:       x.mapper.MapType(f.Type()),
		}
		if c.IsEnum {
			v, err := FormatConstant(f.Constant())
			if err != nil {
				return errors.WithDetailf(errors.Wrapf(err, "enum %s member %s", c.Name, f.Name()),
					"constant value: %#v", f.Constant())
			}
			p.Value = v
		}
		c.Props = append(c.Props, p)
		x.push(f.Type())
	}
	return nil
}

// FormatConstant renders an enum constant in its decimal form.
func FormatConstant(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		return formatFloat(float64(n))
	case float64:
		return formatFloat(n)
	case json.Number:
		if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
			return "", errors.Wrapf(ErrUnrenderableConstant, "%q", n.String())
		}
		return n.String(), nil
	case string:
		if i, err := strconv.ParseInt(n, 0, 64); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
		if u, err := strconv.ParseUint(n, 0, 64); err == nil {
			return strconv.FormatUint(u, 10), nil
		}
		return "", errors.Wrapf(ErrUnrenderableConstant, "%q", n)
	default:
		return "", errors.Wrapf(ErrUnrenderableConstant, "%T", v)
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.Wrapf(ErrUnrenderableConstant, "%v", f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

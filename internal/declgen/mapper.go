package declgen

import (
	"strconv"
	"strings"

	"github.com/cmmoran/dtsgen/internal/model"
)

// Target-language spellings the mapper can produce on its own.
const (
	KeywordVoid    = "void"
	KeywordNumber  = "number"
	KeywordString  = "string"
	KeywordBoolean = "boolean"
	KeywordAny     = "any"
)

// KeywordRemap maps host primitive names to target keywords.
var KeywordRemap = map[string]string{
	"System.Void":    KeywordVoid,
	"System.Single":  KeywordNumber,
	"System.Double":  KeywordNumber,
	"System.Int64":   KeywordNumber,
	"System.Int32":   KeywordNumber,
	"System.Int16":   KeywordNumber,
	"System.SByte":   KeywordNumber,
	"System.Byte":    KeywordNumber,
	"System.Char":    KeywordNumber,
	"System.UInt32":  KeywordNumber,
	"System.UInt64":  KeywordNumber,
	"System.UInt16":  KeywordNumber,
	"System.IntPtr":  KeywordNumber,
	"System.UIntPtr": KeywordNumber,
	"System.String":  KeywordString,
	"System.Byte[]":  KeywordString,
	"System.Boolean": KeywordBoolean,
}

// NameMapper turns type descriptors into target-language type spellings.
// The same descriptor always yields the same string.
type NameMapper struct {
	keywords map[string]string
}

// NewNameMapper returns a mapper over KeywordRemap with extra entries merged on top.
func NewNameMapper(extra map[string]string) *NameMapper {
	kw := make(map[string]string, len(KeywordRemap)+len(extra))
	for k, v := range KeywordRemap {
		kw[k] = v
	}
	for k, v := range extra {
		kw[k] = v
	}
	return &NameMapper{keywords: kw}
}

// Keyword reports the keyword t maps to directly, if any.
func (m *NameMapper) Keyword(t model.Type) (string, bool) {
	kw, ok := m.keywords[model.QualifiedName(t)]
	return kw, ok
}

// MapType returns the target spelling of t.
func (m *NameMapper) MapType(t model.Type) string {
	if t == nil {
		return KeywordVoid
	}
	t = model.RawType(t)

	switch t.Callback() {
	case model.CallbackAction:
		if !t.IsGeneric() || len(t.GenericArgs()) == 0 {
			return "() => " + KeywordVoid
		}
		return m.callback(t.GenericArgs(), false)
	case model.CallbackFunc:
		if len(t.GenericArgs()) > 0 {
			return m.callback(t.GenericArgs(), true)
		}
	}

	if kw, ok := m.Keyword(t); ok {
		return kw
	}

	switch {
	case t.IsGeneric() || t.ContainsGenericParameters() || t.IsPointer():
		return KeywordAny
	case t.IsArray() && t.Elem() != nil:
		elem := m.MapType(t.Elem())
		if strings.Contains(elem, "=>") {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	default:
		return model.QualifiedName(t)
	}
}

// callback spells a function type. When withResult is set the leading
// argument is the result.
func (m *NameMapper) callback(args []model.Type, withResult bool) string {
	ret := KeywordVoid
	if withResult {
		ret = m.MapType(args[0])
		args = args[1:]
	}

	var sb strings.Builder
	sb.WriteString("(")
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("_")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(": ")
		sb.WriteString(m.MapType(a))
	}
	sb.WriteString(") => ")
	sb.WriteString(ret)
	return sb.String()
}

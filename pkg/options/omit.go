package options

import (
	"strings"
)

// ShouldOmit determines whether a candidate seed should be dropped based on
// the configured type and namespace exclusions.
func (o *Options) ShouldOmit(namespace, name string) bool {
	if o == nil {
		return false
	}

	qualified := name
	if namespace != "" {
		qualified = namespace + "." + name
	}
	for _, ex := range o.ExcludeTypes {
		if strings.EqualFold(ex, name) || strings.EqualFold(ex, qualified) {
			return true
		}
	}

	for _, ex := range o.ExcludeNamespaces {
		if containsNamespacePart(namespace, ex) {
			return true
		}
	}

	return false
}

// containsNamespacePart reports whether expected equals namespace or is one of
// its dotted prefixes.
func containsNamespacePart(namespace, expected string) bool {
	expected = strings.Trim(expected, ".")
	if namespace == "" || expected == "" {
		return false
	}

	if strings.EqualFold(namespace, expected) {
		return true
	}
	return len(namespace) > len(expected) &&
		namespace[len(expected)] == '.' &&
		strings.EqualFold(namespace[:len(expected)], expected)
}

package declgen

import (
	"github.com/cockroachdb/errors"
)

// Malformed-input failures. Everything else the generator cannot represent is
// omitted silently.
var (
	ErrMalformedNamespace   = errors.New("malformed namespace")
	ErrUnrenderableConstant = errors.New("constant cannot be rendered as a literal")
)

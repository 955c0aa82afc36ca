// File: settei/parse.go
package settei

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseBool reports whether an environment string represents true. The
// accepted spellings are y, yes, t, true, and 1, case-insensitively; every
// other value is false.
func ParseBool(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "t", "true", "1":
		return true
	default:
		return false
	}
}

// ParseInt parses an environment string as a base-10 integer.
func ParseInt(v string) (int64, error) {
	return strconv.ParseInt(v, 10, 64)
}

// ParseFloat parses an environment string as a float.
func ParseFloat(v string) (float64, error) {
	return strconv.ParseFloat(v, 64)
}

// ParseUUID parses an environment string as a UUID.
func ParseUUID(v string) (uuid.UUID, error) {
	return uuid.Parse(v)
}

// StringParser adapts a raw-string parse function into a property ParseFunc.
// The resulting parser fails when the environment lookup produced structure
// rather than a single scalar.
func StringParser[T any](fn func(string) (T, error)) ParseFunc {
	return func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string environment value, got %T", v)
		}
		return fn(s)
	}
}

// Ready-made parsers for the common scalar property types.
var (
	BoolParser = StringParser(func(s string) (bool, error) { return ParseBool(s), nil })

	IntParser = StringParser(ParseInt)

	FloatParser = StringParser(ParseFloat)

	UUIDParser = StringParser(ParseUUID)
)

package diagnostic

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Naninovel/Language/internal/metadata"
)

// isValid checks the source text of a parameter value against its declared
// type. Quotes are dropped first; list and name separators escaped with '\'
// are literal.
func isValid(value string, meta metadata.Parameter) bool {
	value = stripQuotes(value)
	switch meta.ValueContainerType {
	case metadata.List:
		return all(splitList(value), func(v string) bool { return isScalar(v, meta.ValueType) })
	case metadata.NamedList:
		return all(splitList(value), func(v string) bool { return isScalar(namedValue(v), meta.ValueType) })
	case metadata.Named:
		return isScalar(namedValue(value), meta.ValueType)
	default:
		return isScalar(value, meta.ValueType)
	}
}

func isScalar(value string, valueType metadata.ValueType) bool {
	value = strings.TrimSpace(unescape(value))
	switch valueType {
	case metadata.Integer:
		_, err := strconv.ParseInt(value, 10, 32)
		return err == nil
	case metadata.Decimal:
		return isDecimal(value)
	case metadata.Boolean:
		return strings.EqualFold(value, "true") || strings.EqualFold(value, "false")
	default:
		return true
	}
}

// isDecimal accepts decimal and exponent notation plus the "NaN" and
// "Infinity" symbols. Hex floats and the "inf" shorthand are rejected.
// Out of range magnitudes are valid and round to infinity.
func isDecimal(value string) bool {
	unsigned := strings.ToLower(strings.TrimLeft(value, "+-"))
	if strings.HasPrefix(unsigned, "0x") || unsigned == "inf" {
		return false
	}
	_, err := strconv.ParseFloat(value, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// splitList splits on unescaped ',' dropping empty entries.
func splitList(value string) []string {
	var parts []string
	start := 0
	for _, i := range append(separators(value, ','), len(value)) {
		if part := value[start:i]; part != "" {
			parts = append(parts, part)
		}
		start = i + 1
	}
	return parts
}

// namedValue returns the part after the last unescaped '.', or "" when
// there is none.
func namedValue(value string) string {
	dots := separators(value, '.')
	if len(dots) == 0 {
		return ""
	}
	return value[dots[len(dots)-1]+1:]
}

// separators returns the byte offsets of sep not preceded by '\'.
func separators(value string, sep byte) []int {
	var offsets []int
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case sep:
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// stripQuotes removes unescaped '"' and keeps escape sequences intact.
func stripQuotes(value string) string {
	if !strings.Contains(value, `"`) {
		return value
	}
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '"':
		case '\\':
			b.WriteByte(c)
			if i+1 < len(value) {
				i++
				b.WriteByte(value[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// unescape resolves '\' escapes.
func unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] == '\\' && i+1 < len(value) {
			i++
		}
		b.WriteByte(value[i])
	}
	return b.String()
}

func all(values []string, fn func(string) bool) bool {
	for _, v := range values {
		if !fn(v) {
			return false
		}
	}
	return true
}

package classfile

import (
	"errors"
	"strings"
)

// Descriptor formatting for display. The decoder never verifies
// descriptor well-formedness; an unparseable descriptor is returned
// unchanged rather than failing.

var errBadDescriptor = errors.New("classfile: malformed descriptor")

// FormatFieldDescriptor renders a field type descriptor in Java source
// form: "I" becomes "int", "[[Ljava/lang/String;" becomes
// "java.lang.String[][]".
func FormatFieldDescriptor(d string) string {
	dims := 0
	for dims < len(d) && d[dims] == '[' {
		dims++
	}
	rest := d[dims:]
	if rest == "" {
		return d
	}

	var base string
	switch rest[0] {
	case 'B':
		base = "byte"
	case 'C':
		base = "char"
	case 'D':
		base = "double"
	case 'F':
		base = "float"
	case 'I':
		base = "int"
	case 'J':
		base = "long"
	case 'S':
		base = "short"
	case 'Z':
		base = "boolean"
	case 'V':
		base = "void"
	case 'L':
		if !strings.HasSuffix(rest, ";") {
			return d
		}
		base = strings.ReplaceAll(rest[1:len(rest)-1], "/", ".")
	default:
		return d
	}
	return base + strings.Repeat("[]", dims)
}

// FormatMethodDescriptor renders a method descriptor like "(I[J)V" as
// "void (int, long[])".
func FormatMethodDescriptor(d string) string {
	if d == "" || d[0] != '(' {
		return d
	}
	end := strings.IndexByte(d, ')')
	if end < 0 {
		return d
	}
	params, err := splitParams(d[1:end])
	if err != nil {
		return d
	}
	formatted := make([]string, len(params))
	for i, p := range params {
		formatted[i] = FormatFieldDescriptor(p)
	}
	return FormatFieldDescriptor(d[end+1:]) + " (" + strings.Join(formatted, ", ") + ")"
}

// splitParams cuts the parameter segment of a method descriptor into
// individual field descriptors.
func splitParams(s string) ([]string, error) {
	var out []string
	for i := 0; i < len(s); {
		start := i
		for i < len(s) && s[i] == '[' {
			i++
		}
		if i >= len(s) {
			return nil, errBadDescriptor
		}
		switch s[i] {
		case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
			i++
		case 'L':
			semi := strings.IndexByte(s[i:], ';')
			if semi < 0 {
				return nil, errBadDescriptor
			}
			i += semi + 1
		default:
			return nil, errBadDescriptor
		}
		out = append(out, s[start:i])
	}
	return out, nil
}

package classfile

import "fmt"

// Attribute names with specialized handling. Everything else stays an
// opaque payload; only full bytecode semantics would need more.
const (
	attrCode             = "Code"
	attrSourceFile       = "SourceFile"
	attrConstantValue    = "ConstantValue"
	attrBootstrapMethods = "BootstrapMethods"
)

// Attribute is a named, length-prefixed, self-delimiting extension record
// attached to a class, field, method, or Code block. A Code attribute is
// decoded into Code; every other attribute keeps exactly attribute_length
// payload bytes in Raw with no further interpretation.
type Attribute struct {
	Name string
	Raw  []byte
	Code *CodeAttribute
}

func parseAttributes(r *Reader, pool ConstantPool, count uint16) ([]Attribute, error) {
	attrs := make([]Attribute, count)
	for i := uint16(0); i < count; i++ {
		a, err := parseAttribute(r, pool)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		attrs[i] = a
	}
	return attrs, nil
}

func parseAttribute(r *Reader, pool ConstantPool) (Attribute, error) {
	nameIndex, err := r.ReadU2()
	if err != nil {
		return Attribute{}, fmt.Errorf("reading attribute name index: %w", err)
	}
	name, err := pool.Utf8(nameIndex)
	if err != nil {
		return Attribute{}, fmt.Errorf("resolving attribute name: %w", err)
	}
	length, err := r.ReadU4()
	if err != nil {
		return Attribute{}, fmt.Errorf("reading %q attribute length: %w", name, err)
	}

	if name == attrCode {
		start := r.Offset()
		code, err := parseCodeAttribute(r, pool)
		if err != nil {
			return Attribute{}, err
		}
		if consumed := r.Offset() - start; consumed != int(length) {
			return Attribute{}, &AttributeLengthError{Name: name, Declared: length, Consumed: consumed}
		}
		return Attribute{Name: name, Code: code}, nil
	}

	raw, err := r.ReadBytes(int(length))
	if err != nil {
		return Attribute{}, fmt.Errorf("reading %q attribute payload: %w", name, err)
	}
	return Attribute{Name: name, Raw: raw}, nil
}

func findAttribute(attrs []Attribute, name string) *Attribute {
	for i := range attrs {
		if attrs[i].Name == name {
			return &attrs[i]
		}
	}
	return nil
}

// BootstrapMethod is one entry of a class-level BootstrapMethods
// attribute.
type BootstrapMethod struct {
	MethodRef uint16   // pool index of a MethodHandle entry
	Arguments []uint16 // pool indices of the static arguments
}

// decodeBootstrapMethods decodes the retained payload of a
// BootstrapMethods attribute after the main parse.
func decodeBootstrapMethods(raw []byte) ([]BootstrapMethod, error) {
	r := NewReaderBytes(raw)
	n, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading bootstrap method count: %w", err)
	}
	methods := make([]BootstrapMethod, n)
	for i := range methods {
		ref, err := r.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("reading bootstrap method %d: %w", i, err)
		}
		argc, err := r.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("reading bootstrap method %d argument count: %w", i, err)
		}
		args := make([]uint16, argc)
		for j := range args {
			if args[j], err = r.ReadU2(); err != nil {
				return nil, fmt.Errorf("reading bootstrap method %d argument %d: %w", i, j, err)
			}
		}
		methods[i] = BootstrapMethod{MethodRef: ref, Arguments: args}
	}
	return methods, nil
}

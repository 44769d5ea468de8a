package classfile

import "fmt"

// FieldInfo and MethodInfo share a physical layout but are kept as two
// named types: their semantic roles diverge and they should not be
// accidentally interchangeable.

// FieldInfo is one field of a class, with its owned attributes.
type FieldInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// Name resolves the field's name through the pool.
func (f *FieldInfo) Name(pool ConstantPool) (string, error) {
	return pool.Utf8(f.NameIndex)
}

// Descriptor resolves the field's type descriptor through the pool.
func (f *FieldInfo) Descriptor(pool ConstantPool) (string, error) {
	return pool.Utf8(f.DescriptorIndex)
}

// ConstantValueIndex returns the pool index carried by the field's
// ConstantValue attribute. The second result is false when the field has
// no such attribute.
func (f *FieldInfo) ConstantValueIndex() (uint16, bool, error) {
	a := findAttribute(f.Attributes, attrConstantValue)
	if a == nil {
		return 0, false, nil
	}
	idx, err := NewReaderBytes(a.Raw).ReadU2()
	if err != nil {
		return 0, false, fmt.Errorf("decoding ConstantValue attribute: %w", err)
	}
	return idx, true, nil
}

// MethodInfo is one method of a class, with its owned attributes.
type MethodInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []Attribute
}

// Name resolves the method's name through the pool.
func (m *MethodInfo) Name(pool ConstantPool) (string, error) {
	return pool.Utf8(m.NameIndex)
}

// Descriptor resolves the method's signature descriptor through the pool.
func (m *MethodInfo) Descriptor(pool ConstantPool) (string, error) {
	return pool.Utf8(m.DescriptorIndex)
}

// Code returns the method's decoded Code attribute, or nil for methods
// without one (abstract and native methods).
func (m *MethodInfo) Code() *CodeAttribute {
	if a := findAttribute(m.Attributes, attrCode); a != nil {
		return a.Code
	}
	return nil
}

func parseFieldInfo(r *Reader, pool ConstantPool) (FieldInfo, error) {
	var f FieldInfo
	var err error
	if f.AccessFlags, err = r.ReadU2(); err != nil {
		return FieldInfo{}, fmt.Errorf("reading access flags: %w", err)
	}
	if f.NameIndex, err = r.ReadU2(); err != nil {
		return FieldInfo{}, fmt.Errorf("reading name index: %w", err)
	}
	if f.DescriptorIndex, err = r.ReadU2(); err != nil {
		return FieldInfo{}, fmt.Errorf("reading descriptor index: %w", err)
	}
	attrCount, err := r.ReadU2()
	if err != nil {
		return FieldInfo{}, fmt.Errorf("reading attributes count: %w", err)
	}
	if f.Attributes, err = parseAttributes(r, pool, attrCount); err != nil {
		return FieldInfo{}, err
	}
	return f, nil
}

func parseMethodInfo(r *Reader, pool ConstantPool) (MethodInfo, error) {
	var m MethodInfo
	var err error
	if m.AccessFlags, err = r.ReadU2(); err != nil {
		return MethodInfo{}, fmt.Errorf("reading access flags: %w", err)
	}
	if m.NameIndex, err = r.ReadU2(); err != nil {
		return MethodInfo{}, fmt.Errorf("reading name index: %w", err)
	}
	if m.DescriptorIndex, err = r.ReadU2(); err != nil {
		return MethodInfo{}, fmt.Errorf("reading descriptor index: %w", err)
	}
	attrCount, err := r.ReadU2()
	if err != nil {
		return MethodInfo{}, fmt.Errorf("reading attributes count: %w", err)
	}
	if m.Attributes, err = parseAttributes(r, pool, attrCount); err != nil {
		return MethodInfo{}, err
	}
	return m, nil
}

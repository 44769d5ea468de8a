package classfile

import (
	"fmt"
	"io"
)

// classMagic is the leading four bytes of every class file.
const classMagic = 0xCAFEBABE

// ClassFile is the decoded form of one compiled JVM class. It owns the
// constant pool and every nested structure; cross-references between
// them stay as pool indices resolved through lookup, never as pointers.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []Attribute
}

// ParseReader decodes a class file from r. The reader is drained but not
// closed; the caller owns the underlying source.
func ParseReader(r io.Reader) (*ClassFile, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading class file: %w", err)
	}
	return Parse(b)
}

// Parse decodes a class file image in a single front-to-back pass with
// no backtracking. On any failure it returns a nil ClassFile; there is
// no partial result.
func Parse(b []byte) (*ClassFile, error) {
	r := NewReaderBytes(b)
	cf := &ClassFile{}

	magic, err := r.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if magic != classMagic {
		return nil, &NotAClassFileError{Magic: magic}
	}

	if cf.MinorVersion, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("reading minor version: %w", err)
	}
	if cf.MajorVersion, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("reading major version: %w", err)
	}

	cpCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading constant pool count: %w", err)
	}
	if cf.ConstantPool, err = parseConstantPool(r, cpCount); err != nil {
		return nil, fmt.Errorf("parsing constant pool: %w", err)
	}

	if cf.AccessFlags, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("reading access flags: %w", err)
	}
	if cf.ThisClass, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}
	if cf.SuperClass, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}

	interfacesCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading interfaces count: %w", err)
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = r.ReadU2(); err != nil {
			return nil, fmt.Errorf("reading interface %d: %w", i, err)
		}
	}

	fieldsCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading fields count: %w", err)
	}
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		if cf.Fields[i], err = parseFieldInfo(r, cf.ConstantPool); err != nil {
			return nil, fmt.Errorf("parsing field %d: %w", i, err)
		}
	}

	methodsCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading methods count: %w", err)
	}
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		if cf.Methods[i], err = parseMethodInfo(r, cf.ConstantPool); err != nil {
			return nil, fmt.Errorf("parsing method %d: %w", i, err)
		}
	}

	attrCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading class attributes count: %w", err)
	}
	if cf.Attributes, err = parseAttributes(r, cf.ConstantPool, attrCount); err != nil {
		return nil, fmt.Errorf("parsing class attributes: %w", err)
	}

	return cf, nil
}

// ClassName returns the internal-form name of this class (for example
// "java/lang/String").
func (cf *ClassFile) ClassName() (string, error) {
	return cf.ConstantPool.ClassName(cf.ThisClass)
}

// SuperClassName returns the super class name, or "" when super_class is
// zero (only java/lang/Object has no super class).
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	return cf.ConstantPool.ClassName(cf.SuperClass)
}

// InterfaceNames resolves the name of every direct superinterface.
func (cf *ClassFile) InterfaceNames() ([]string, error) {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		name, err := cf.ConstantPool.ClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("resolving interface %d: %w", i, err)
		}
		names[i] = name
	}
	return names, nil
}

// FindMethod returns the method with the given name and descriptor, or
// nil when absent.
func (cf *ClassFile) FindMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		m := &cf.Methods[i]
		n, err := m.Name(cf.ConstantPool)
		if err != nil || n != name {
			continue
		}
		d, err := m.Descriptor(cf.ConstantPool)
		if err == nil && d == descriptor {
			return m
		}
	}
	return nil
}

// FindMethodByName returns the first method with the given name, or nil.
func (cf *ClassFile) FindMethodByName(name string) *MethodInfo {
	for i := range cf.Methods {
		n, err := cf.Methods[i].Name(cf.ConstantPool)
		if err == nil && n == name {
			return &cf.Methods[i]
		}
	}
	return nil
}

// SourceFile returns the file name recorded by the class-level
// SourceFile attribute, or "" when the class has none.
func (cf *ClassFile) SourceFile() (string, error) {
	a := findAttribute(cf.Attributes, attrSourceFile)
	if a == nil {
		return "", nil
	}
	idx, err := NewReaderBytes(a.Raw).ReadU2()
	if err != nil {
		return "", fmt.Errorf("decoding SourceFile attribute: %w", err)
	}
	return cf.ConstantPool.Utf8(idx)
}

// BootstrapMethods decodes the class-level BootstrapMethods attribute,
// or returns nil when the class has none.
func (cf *ClassFile) BootstrapMethods() ([]BootstrapMethod, error) {
	a := findAttribute(cf.Attributes, attrBootstrapMethods)
	if a == nil {
		return nil, nil
	}
	return decodeBootstrapMethods(a.Raw)
}

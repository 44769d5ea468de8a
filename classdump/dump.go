package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tinylib/msgp/msgp"

	"github.com/m1cha1s/classfile.go/classfile"
)

// Summary is the machine-readable projection of a decoded class file.
type Summary struct {
	File         string          `json:"file" cbor:"file"`
	MajorVersion uint16          `json:"major_version" cbor:"major_version"`
	MinorVersion uint16          `json:"minor_version" cbor:"minor_version"`
	ClassName    string          `json:"class_name" cbor:"class_name"`
	SuperClass   string          `json:"super_class,omitempty" cbor:"super_class,omitempty"`
	Flags        []string        `json:"flags" cbor:"flags"`
	Interfaces   []string        `json:"interfaces,omitempty" cbor:"interfaces,omitempty"`
	SourceFile   string          `json:"source_file,omitempty" cbor:"source_file,omitempty"`
	Fields       []MemberSummary `json:"fields" cbor:"fields"`
	Methods      []MemberSummary `json:"methods" cbor:"methods"`
	ConstantPool []string        `json:"constant_pool,omitempty" cbor:"constant_pool,omitempty"`
}

// MemberSummary describes one field or method.
type MemberSummary struct {
	Name       string   `json:"name" cbor:"name"`
	Descriptor string   `json:"descriptor" cbor:"descriptor"`
	Type       string   `json:"type" cbor:"type"`
	Flags      []string `json:"flags" cbor:"flags"`
	CodeSize   int      `json:"code_size,omitempty" cbor:"code_size,omitempty"`
	Handlers   int      `json:"exception_handlers,omitempty" cbor:"exception_handlers,omitempty"`
}

// dumpFile owns the file handle for one class file: it opens, decodes,
// writes the dump, and closes on every path.
func dumpFile(w io.Writer, path, format string, verbose bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cf, err := classfile.ParseReader(f)
	if err != nil {
		return err
	}

	s, err := summarize(path, cf, verbose)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "cbor":
		b, err := cbor.Marshal(s)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "msgpack":
		b, err := msgp.AppendIntf(nil, s.intf())
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return writeText(w, s)
	}
}

func summarize(path string, cf *classfile.ClassFile, verbose bool) (*Summary, error) {
	className, err := cf.ClassName()
	if err != nil {
		return nil, fmt.Errorf("resolving class name: %w", err)
	}
	superName, err := cf.SuperClassName()
	if err != nil {
		return nil, fmt.Errorf("resolving super class: %w", err)
	}
	interfaces, err := cf.InterfaceNames()
	if err != nil {
		return nil, err
	}
	sourceFile, err := cf.SourceFile()
	if err != nil {
		return nil, err
	}

	s := &Summary{
		File:         path,
		MajorVersion: cf.MajorVersion,
		MinorVersion: cf.MinorVersion,
		ClassName:    className,
		SuperClass:   superName,
		Flags:        classfile.ClassFlagNames(cf.AccessFlags),
		Interfaces:   interfaces,
		SourceFile:   sourceFile,
	}

	for i := range cf.Fields {
		f := &cf.Fields[i]
		name, err := f.Name(cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("resolving field %d name: %w", i, err)
		}
		desc, err := f.Descriptor(cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("resolving field %d descriptor: %w", i, err)
		}
		s.Fields = append(s.Fields, MemberSummary{
			Name:       name,
			Descriptor: desc,
			Type:       classfile.FormatFieldDescriptor(desc),
			Flags:      classfile.FieldFlagNames(f.AccessFlags),
		})
	}

	for i := range cf.Methods {
		m := &cf.Methods[i]
		name, err := m.Name(cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("resolving method %d name: %w", i, err)
		}
		desc, err := m.Descriptor(cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("resolving method %d descriptor: %w", i, err)
		}
		ms := MemberSummary{
			Name:       name,
			Descriptor: desc,
			Type:       classfile.FormatMethodDescriptor(desc),
			Flags:      classfile.MethodFlagNames(m.AccessFlags),
		}
		if code := m.Code(); code != nil {
			ms.CodeSize = len(code.Code)
			ms.Handlers = len(code.ExceptionTable)
		}
		s.Methods = append(s.Methods, ms)
	}

	if verbose {
		s.ConstantPool = poolStrings(cf.ConstantPool)
	}
	return s, nil
}

func writeText(w io.Writer, s *Summary) error {
	fmt.Fprintf(w, "%s:\n", s.File)
	fmt.Fprintf(w, "Class version: %d.%d\n", s.MajorVersion, s.MinorVersion)
	fmt.Fprintf(w, "  %s class %s\n", strings.Join(s.Flags, " "), s.ClassName)
	if s.SuperClass != "" {
		fmt.Fprintf(w, "  extends %s\n", s.SuperClass)
	}
	for _, name := range s.Interfaces {
		fmt.Fprintf(w, "  implements %s\n", name)
	}
	if s.SourceFile != "" {
		fmt.Fprintf(w, "  source: %s\n", s.SourceFile)
	}
	for _, f := range s.Fields {
		fmt.Fprintf(w, "  field  %-30s %s\n", strings.Join(f.Flags, " ")+" "+f.Type, f.Name)
	}
	for _, m := range s.Methods {
		line := fmt.Sprintf("  method %s %s %s", strings.Join(m.Flags, " "), m.Name, m.Type)
		if m.CodeSize > 0 {
			line += fmt.Sprintf("  [%d bytes of code, %d handlers]", m.CodeSize, m.Handlers)
		}
		fmt.Fprintln(w, line)
	}
	for _, c := range s.ConstantPool {
		fmt.Fprintf(w, "  %s\n", c)
	}
	return nil
}

// intf converts the summary into the plain map/slice shapes accepted by
// msgp.AppendIntf.
func (s *Summary) intf() map[string]interface{} {
	members := func(ms []MemberSummary) []interface{} {
		out := make([]interface{}, len(ms))
		for i, m := range ms {
			out[i] = map[string]interface{}{
				"name":               m.Name,
				"descriptor":         m.Descriptor,
				"type":               m.Type,
				"flags":              strs(m.Flags),
				"code_size":          m.CodeSize,
				"exception_handlers": m.Handlers,
			}
		}
		return out
	}
	return map[string]interface{}{
		"file":          s.File,
		"major_version": int(s.MajorVersion),
		"minor_version": int(s.MinorVersion),
		"class_name":    s.ClassName,
		"super_class":   s.SuperClass,
		"flags":         strs(s.Flags),
		"interfaces":    strs(s.Interfaces),
		"source_file":   s.SourceFile,
		"fields":        members(s.Fields),
		"methods":       members(s.Methods),
		"constant_pool": strs(s.ConstantPool),
	}
}

func strs(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func poolStrings(pool classfile.ConstantPool) []string {
	out := make([]string, 0, len(pool))
	for i := 1; i < len(pool); i++ {
		if pool[i] == nil {
			out = append(out, fmt.Sprintf("#%d = <unusable>", i))
			continue
		}
		out = append(out, fmt.Sprintf("#%d = %s", i, describeEntry(pool[i])))
	}
	return out
}

func describeEntry(e classfile.ConstantPoolEntry) string {
	switch c := e.(type) {
	case *classfile.ConstantUtf8:
		return fmt.Sprintf("Utf8 %q", c.Value)
	case *classfile.ConstantInteger:
		return fmt.Sprintf("Integer %d", c.Value())
	case *classfile.ConstantFloat:
		return fmt.Sprintf("Float %g", c.Value())
	case *classfile.ConstantLong:
		return fmt.Sprintf("Long %d", c.Value())
	case *classfile.ConstantDouble:
		return fmt.Sprintf("Double %g", c.Value())
	case *classfile.ConstantClass:
		return fmt.Sprintf("Class #%d", c.NameIndex)
	case *classfile.ConstantString:
		return fmt.Sprintf("String #%d", c.StringIndex)
	case *classfile.ConstantFieldref:
		return fmt.Sprintf("Fieldref #%d.#%d", c.ClassIndex, c.NameAndTypeIndex)
	case *classfile.ConstantMethodref:
		return fmt.Sprintf("Methodref #%d.#%d", c.ClassIndex, c.NameAndTypeIndex)
	case *classfile.ConstantInterfaceMethodref:
		return fmt.Sprintf("InterfaceMethodref #%d.#%d", c.ClassIndex, c.NameAndTypeIndex)
	case *classfile.ConstantNameAndType:
		return fmt.Sprintf("NameAndType #%d:#%d", c.NameIndex, c.DescriptorIndex)
	case *classfile.ConstantMethodHandle:
		return fmt.Sprintf("MethodHandle %d #%d", c.ReferenceKind, c.ReferenceIndex)
	case *classfile.ConstantMethodType:
		return fmt.Sprintf("MethodType #%d", c.DescriptorIndex)
	case *classfile.ConstantInvokeDynamic:
		return fmt.Sprintf("InvokeDynamic #%d #%d", c.BootstrapMethodAttrIndex, c.NameAndTypeIndex)
	default:
		return e.Tag().String()
	}
}

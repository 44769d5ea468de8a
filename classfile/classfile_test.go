package classfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

func appendU1(b []byte, v uint8) []byte  { return append(b, v) }
func appendU2(b []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(b, v) }
func appendU4(b []byte, v uint32) []byte { return binary.BigEndian.AppendUint32(b, v) }

func appendUtf8Constant(b []byte, s string) []byte {
	b = appendU1(b, uint8(TagUtf8))
	b = appendU2(b, uint16(len(s)))
	return append(b, s...)
}

func appendClassConstant(b []byte, nameIndex uint16) []byte {
	b = appendU1(b, uint8(TagClass))
	return appendU2(b, nameIndex)
}

// helloClass builds a minimal synthetic class image equivalent to
//
//	public class Hello { private int count; public static void main(String[]); }
//
// with a SourceFile attribute and a one-instruction main body.
func helloClass() []byte {
	var b []byte
	b = appendU4(b, 0xCAFEBABE)
	b = appendU2(b, 0)  // minor_version
	b = appendU2(b, 65) // major_version (Java 21)

	b = appendU2(b, 12)                              // constant_pool_count
	b = appendUtf8Constant(b, "Hello")               // #1
	b = appendClassConstant(b, 1)                    // #2
	b = appendUtf8Constant(b, "java/lang/Object")    // #3
	b = appendClassConstant(b, 3)                    // #4
	b = appendUtf8Constant(b, "main")                // #5
	b = appendUtf8Constant(b, "([Ljava/lang/String;)V") // #6
	b = appendUtf8Constant(b, "Code")                // #7
	b = appendUtf8Constant(b, "SourceFile")          // #8
	b = appendUtf8Constant(b, "Hello.java")          // #9
	b = appendUtf8Constant(b, "count")               // #10
	b = appendUtf8Constant(b, "I")                   // #11

	b = appendU2(b, AccPublic|AccSuper) // access_flags
	b = appendU2(b, 2)                  // this_class
	b = appendU2(b, 4)                  // super_class
	b = appendU2(b, 0)                  // interfaces_count

	b = appendU2(b, 1)          // fields_count
	b = appendU2(b, AccPrivate) // field access_flags
	b = appendU2(b, 10)         // name_index "count"
	b = appendU2(b, 11)         // descriptor_index "I"
	b = appendU2(b, 0)          // field attributes_count

	b = appendU2(b, 1)                   // methods_count
	b = appendU2(b, AccPublic|AccStatic) // method access_flags
	b = appendU2(b, 5)                   // name_index "main"
	b = appendU2(b, 6)                   // descriptor_index
	b = appendU2(b, 1)                   // method attributes_count
	b = appendU2(b, 7)                   // attribute name "Code"
	b = appendU4(b, 13)                  // attribute_length
	b = appendU2(b, 1)                   // max_stack
	b = appendU2(b, 1)                   // max_locals
	b = appendU4(b, 1)                   // code_length
	b = append(b, 0xB1)                  // return
	b = appendU2(b, 0)                   // exception_table_length
	b = appendU2(b, 0)                   // Code attributes_count

	b = appendU2(b, 1) // class attributes_count
	b = appendU2(b, 8) // attribute name "SourceFile"
	b = appendU4(b, 2)
	b = appendU2(b, 9) // "Hello.java"
	return b
}

func TestParseHelloClass(t *testing.T) {
	cf, err := Parse(helloClass())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cf.MajorVersion != 65 || cf.MinorVersion != 0 {
		t.Errorf("version: got %d.%d, want 65.0", cf.MajorVersion, cf.MinorVersion)
	}

	name, err := cf.ClassName()
	if err != nil {
		t.Fatalf("ClassName: %v", err)
	}
	if name != "Hello" {
		t.Errorf("class name: got %q, want %q", name, "Hello")
	}

	super, err := cf.SuperClassName()
	if err != nil {
		t.Fatalf("SuperClassName: %v", err)
	}
	if super != "java/lang/Object" {
		t.Errorf("super class: got %q, want %q", super, "java/lang/Object")
	}

	if len(cf.Interfaces) != 0 {
		t.Errorf("interfaces: got %d, want 0", len(cf.Interfaces))
	}
	if len(cf.Fields) != 1 {
		t.Fatalf("fields: got %d, want 1", len(cf.Fields))
	}
	if len(cf.Methods) != 1 {
		t.Fatalf("methods: got %d, want 1", len(cf.Methods))
	}

	fieldName, err := cf.Fields[0].Name(cf.ConstantPool)
	if err != nil || fieldName != "count" {
		t.Errorf("field name: got %q (err %v), want %q", fieldName, err, "count")
	}
	fieldDesc, err := cf.Fields[0].Descriptor(cf.ConstantPool)
	if err != nil || fieldDesc != "I" {
		t.Errorf("field descriptor: got %q (err %v), want %q", fieldDesc, err, "I")
	}

	main := cf.FindMethod("main", "([Ljava/lang/String;)V")
	if main == nil {
		t.Fatal("main method not found")
	}
	code := main.Code()
	if code == nil {
		t.Fatal("main has no Code attribute")
	}
	if code.MaxStack != 1 || code.MaxLocals != 1 {
		t.Errorf("code limits: got stack %d locals %d, want 1/1", code.MaxStack, code.MaxLocals)
	}
	if len(code.Code) != 1 || code.Code[0] != 0xB1 {
		t.Errorf("instruction bytes: got %#v, want [0xB1]", code.Code)
	}
	if len(code.ExceptionTable) != 0 {
		t.Errorf("exception table: got %d rows, want 0", len(code.ExceptionTable))
	}

	source, err := cf.SourceFile()
	if err != nil {
		t.Fatalf("SourceFile: %v", err)
	}
	if source != "Hello.java" {
		t.Errorf("source file: got %q, want %q", source, "Hello.java")
	}
}

func TestParseDeterministic(t *testing.T) {
	b := helloClass()
	first, err := Parse(b)
	if err != nil {
		t.Fatalf("first Parse: %v", err)
	}
	second, err := Parse(b)
	if err != nil {
		t.Fatalf("second Parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("decoding the same bytes twice produced different trees")
	}
}

func TestParseBadMagic(t *testing.T) {
	b := helloClass()
	b[0] = 0xDE
	b[1] = 0xAD

	cf, err := Parse(b)
	if cf != nil {
		t.Error("expected nil ClassFile on bad magic")
	}
	if !errors.Is(err, ErrNotAClassFile) {
		t.Fatalf("expected ErrNotAClassFile, got %v", err)
	}
	var magicErr *NotAClassFileError
	if !errors.As(err, &magicErr) {
		t.Fatalf("expected NotAClassFileError, got %T", err)
	}
	if magicErr.Magic != 0xDEADBABE {
		t.Errorf("reported magic: got 0x%08X, want 0xDEADBABE", magicErr.Magic)
	}
}

func TestParseTruncatedAtEveryOffset(t *testing.T) {
	b := helloClass()
	for i := 0; i < len(b); i++ {
		cf, err := Parse(b[:i])
		if err == nil {
			t.Fatalf("Parse of %d-byte prefix succeeded, want error", i)
		}
		if cf != nil {
			t.Fatalf("Parse of %d-byte prefix returned a partial ClassFile", i)
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(nil)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParseReaderDrainsSource(t *testing.T) {
	cf, err := ParseReader(bytes.NewReader(helloClass()))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if name, _ := cf.ClassName(); name != "Hello" {
		t.Errorf("class name via ParseReader: got %q, want %q", name, "Hello")
	}
}

func TestFindMethodByName(t *testing.T) {
	cf, err := Parse(helloClass())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cf.FindMethodByName("main") == nil {
		t.Error("FindMethodByName(main) returned nil")
	}
	if cf.FindMethodByName("missing") != nil {
		t.Error("FindMethodByName(missing) returned a method")
	}
	if cf.FindMethod("main", "()V") != nil {
		t.Error("FindMethod with wrong descriptor returned a method")
	}
}

func FuzzParse(f *testing.F) {
	f.Add(helloClass())
	truncated := helloClass()
	f.Add(truncated[:len(truncated)/2])
	corrupted := helloClass()
	corrupted[10] ^= 0xFF
	f.Add(corrupted)

	f.Fuzz(func(t *testing.T, data []byte) {
		cf, err := Parse(data)
		if err != nil && cf != nil {
			t.Error("Parse returned both an error and a ClassFile")
		}
	})
}

func BenchmarkParse(b *testing.B) {
	image := helloClass()
	b.SetBytes(int64(len(image)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(image); err != nil {
			b.Fatal(err)
		}
	}
}

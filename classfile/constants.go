package classfile

import (
	"math"
	"strconv"
)

// Tag is the 1-byte discriminator identifying which physical layout a
// constant pool entry uses (JVMS table 4.4-A).
type Tag uint8

const (
	TagUtf8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagInvokeDynamic      Tag = 18
)

func (t Tag) String() string {
	switch t {
	case TagUtf8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldref:
		return "Fieldref"
	case TagMethodref:
		return "Methodref"
	case TagInterfaceMethodref:
		return "InterfaceMethodref"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	default:
		return "Tag(" + strconv.Itoa(int(t)) + ")"
	}
}

// slots returns how many logical pool index slots an entry with this tag
// occupies. Long and Double take two (JVMS 4.4.5); the second slot is
// unusable.
func (t Tag) slots() int {
	if t == TagLong || t == TagDouble {
		return 2
	}
	return 1
}

// ConstantPoolEntry is implemented by all constant pool entry variants.
// The dynamic type always matches the tag byte read from the stream.
type ConstantPoolEntry interface {
	Tag() Tag
}

// ConstantUtf8 holds decoded, validated UTF-8 text.
type ConstantUtf8 struct {
	Value string
}

func (c *ConstantUtf8) Tag() Tag { return TagUtf8 }

// ConstantInteger holds the raw big-endian bit pattern of an int constant.
type ConstantInteger struct {
	Bits uint32
}

func (c *ConstantInteger) Tag() Tag { return TagInteger }

// Value returns the constant as a signed 32-bit integer.
func (c *ConstantInteger) Value() int32 { return int32(c.Bits) }

// ConstantFloat holds the raw IEEE 754 bit pattern of a float constant.
type ConstantFloat struct {
	Bits uint32
}

func (c *ConstantFloat) Tag() Tag { return TagFloat }

// Value returns the constant as a float32.
func (c *ConstantFloat) Value() float32 { return math.Float32frombits(c.Bits) }

// ConstantLong holds the two 32-bit halves of a long constant as read.
type ConstantLong struct {
	HighBits uint32
	LowBits  uint32
}

func (c *ConstantLong) Tag() Tag { return TagLong }

// Value returns the constant as a signed 64-bit integer.
func (c *ConstantLong) Value() int64 {
	return int64(uint64(c.HighBits)<<32 | uint64(c.LowBits))
}

// ConstantDouble holds the two 32-bit halves of a double constant as read.
type ConstantDouble struct {
	HighBits uint32
	LowBits  uint32
}

func (c *ConstantDouble) Tag() Tag { return TagDouble }

// Value returns the constant as a float64.
func (c *ConstantDouble) Value() float64 {
	return math.Float64frombits(uint64(c.HighBits)<<32 | uint64(c.LowBits))
}

// ConstantClass references the Utf8 entry holding the class name.
type ConstantClass struct {
	NameIndex uint16
}

func (c *ConstantClass) Tag() Tag { return TagClass }

// ConstantString references the Utf8 entry holding the string text.
type ConstantString struct {
	StringIndex uint16
}

func (c *ConstantString) Tag() Tag { return TagString }

type ConstantFieldref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldref) Tag() Tag { return TagFieldref }

type ConstantMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodref) Tag() Tag { return TagMethodref }

type ConstantInterfaceMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodref) Tag() Tag { return TagInterfaceMethodref }

type ConstantNameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndType) Tag() Tag { return TagNameAndType }

type ConstantMethodHandle struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (c *ConstantMethodHandle) Tag() Tag { return TagMethodHandle }

type ConstantMethodType struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodType) Tag() Tag { return TagMethodType }

type ConstantInvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamic) Tag() Tag { return TagInvokeDynamic }

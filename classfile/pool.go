package classfile

import (
	"fmt"
	"unicode/utf8"
)

// isUTF8Valid validates Utf8 constant payloads. It can be overridden by
// accelerated implementations via build tags.
var isUTF8Valid = func(b []byte) bool { return utf8.Valid(b) }

// ConstantPool is the class file's shared table of literal values and
// symbolic references. It is 1-indexed: slot 0 is always nil, and the
// slot after a Long or Double entry is nil too, matching the format's
// index numbering (those entries occupy two logical slots).
//
// All lookups happen after the pool is fully built; entries may forward-
// reference other entries by index, so resolution is never attempted
// during construction.
type ConstantPool []ConstantPoolEntry

// parseConstantPool reads count-1 logical entries in sequence (the
// format declares the count field as number of entries plus one).
func parseConstantPool(r *Reader, count uint16) (ConstantPool, error) {
	pool := make(ConstantPool, count)
	for i := uint16(1); i < count; {
		entry, err := parseConstantPoolEntry(r, i)
		if err != nil {
			return nil, err
		}
		pool[i] = entry
		i += uint16(entry.Tag().slots())
	}
	return pool, nil
}

// parseConstantPoolEntry reads one tag byte and dispatches on it. Each
// branch reads the tag's fields in their exact physical order.
func parseConstantPoolEntry(r *Reader, index uint16) (ConstantPoolEntry, error) {
	tag, err := r.ReadU1()
	if err != nil {
		return nil, fmt.Errorf("reading tag of constant %d: %w", index, err)
	}

	switch Tag(tag) {
	case TagUtf8:
		length, err := r.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("reading Utf8 length at index %d: %w", index, err)
		}
		raw, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, fmt.Errorf("reading Utf8 bytes at index %d: %w", index, err)
		}
		if !isUTF8Valid(raw) {
			return nil, &MalformedConstantError{Index: index, Tag: TagUtf8}
		}
		return &ConstantUtf8{Value: string(raw)}, nil

	case TagInteger:
		bits, err := r.ReadU4()
		if err != nil {
			return nil, fmt.Errorf("reading Integer at index %d: %w", index, err)
		}
		return &ConstantInteger{Bits: bits}, nil

	case TagFloat:
		bits, err := r.ReadU4()
		if err != nil {
			return nil, fmt.Errorf("reading Float at index %d: %w", index, err)
		}
		return &ConstantFloat{Bits: bits}, nil

	case TagLong:
		hi, err := r.ReadU4()
		if err != nil {
			return nil, fmt.Errorf("reading Long high bytes at index %d: %w", index, err)
		}
		lo, err := r.ReadU4()
		if err != nil {
			return nil, fmt.Errorf("reading Long low bytes at index %d: %w", index, err)
		}
		return &ConstantLong{HighBits: hi, LowBits: lo}, nil

	case TagDouble:
		hi, err := r.ReadU4()
		if err != nil {
			return nil, fmt.Errorf("reading Double high bytes at index %d: %w", index, err)
		}
		lo, err := r.ReadU4()
		if err != nil {
			return nil, fmt.Errorf("reading Double low bytes at index %d: %w", index, err)
		}
		return &ConstantDouble{HighBits: hi, LowBits: lo}, nil

	case TagClass:
		nameIndex, err := r.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("reading Class at index %d: %w", index, err)
		}
		return &ConstantClass{NameIndex: nameIndex}, nil

	case TagString:
		stringIndex, err := r.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("reading String at index %d: %w", index, err)
		}
		return &ConstantString{StringIndex: stringIndex}, nil

	case TagFieldref:
		classIndex, natIndex, err := readRefPair(r, TagFieldref, index)
		if err != nil {
			return nil, err
		}
		return &ConstantFieldref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil

	case TagMethodref:
		classIndex, natIndex, err := readRefPair(r, TagMethodref, index)
		if err != nil {
			return nil, err
		}
		return &ConstantMethodref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil

	case TagInterfaceMethodref:
		classIndex, natIndex, err := readRefPair(r, TagInterfaceMethodref, index)
		if err != nil {
			return nil, err
		}
		return &ConstantInterfaceMethodref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil

	case TagNameAndType:
		nameIndex, descIndex, err := readRefPair(r, TagNameAndType, index)
		if err != nil {
			return nil, err
		}
		return &ConstantNameAndType{NameIndex: nameIndex, DescriptorIndex: descIndex}, nil

	case TagMethodHandle:
		kind, err := r.ReadU1()
		if err != nil {
			return nil, fmt.Errorf("reading MethodHandle kind at index %d: %w", index, err)
		}
		refIndex, err := r.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("reading MethodHandle reference at index %d: %w", index, err)
		}
		return &ConstantMethodHandle{ReferenceKind: kind, ReferenceIndex: refIndex}, nil

	case TagMethodType:
		descIndex, err := r.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("reading MethodType at index %d: %w", index, err)
		}
		return &ConstantMethodType{DescriptorIndex: descIndex}, nil

	case TagInvokeDynamic:
		bootstrapIndex, natIndex, err := readRefPair(r, TagInvokeDynamic, index)
		if err != nil {
			return nil, err
		}
		return &ConstantInvokeDynamic{BootstrapMethodAttrIndex: bootstrapIndex, NameAndTypeIndex: natIndex}, nil

	default:
		return nil, &UnknownTagError{Tag: tag, Index: index}
	}
}

// readRefPair reads the two u2 fields shared by the ref-shaped tags.
func readRefPair(r *Reader, tag Tag, index uint16) (uint16, uint16, error) {
	first, err := r.ReadU2()
	if err != nil {
		return 0, 0, fmt.Errorf("reading %v at index %d: %w", tag, index, err)
	}
	second, err := r.ReadU2()
	if err != nil {
		return 0, 0, fmt.Errorf("reading %v at index %d: %w", tag, index, err)
	}
	return first, second, nil
}

// Entry resolves a 1-based pool index. Index zero, indices beyond the
// pool, and the unusable slot after a Long or Double all fail with an
// IndexError.
func (p ConstantPool) Entry(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) >= len(p) || p[index] == nil {
		return nil, &IndexError{Index: index, Size: len(p)}
	}
	return p[index], nil
}

// Utf8 resolves index and requires the entry to be a Utf8 constant.
func (p ConstantPool) Utf8(index uint16) (string, error) {
	entry, err := p.Entry(index)
	if err != nil {
		return "", err
	}
	u, ok := entry.(*ConstantUtf8)
	if !ok {
		return "", &WrongKindError{Index: index, Want: TagUtf8, Got: entry.Tag()}
	}
	return u.Value, nil
}

// ClassName resolves a Class entry to its name text.
func (p ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := p.Entry(index)
	if err != nil {
		return "", err
	}
	c, ok := entry.(*ConstantClass)
	if !ok {
		return "", &WrongKindError{Index: index, Want: TagClass, Got: entry.Tag()}
	}
	return p.Utf8(c.NameIndex)
}

// NameAndType resolves a NameAndType entry to its name and descriptor
// texts.
func (p ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	entry, err := p.Entry(index)
	if err != nil {
		return "", "", err
	}
	nat, ok := entry.(*ConstantNameAndType)
	if !ok {
		return "", "", &WrongKindError{Index: index, Want: TagNameAndType, Got: entry.Tag()}
	}
	if name, err = p.Utf8(nat.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = p.Utf8(nat.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

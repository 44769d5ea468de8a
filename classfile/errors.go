package classfile

import (
	"errors"
	"fmt"
)

// Sentinel errors for the decode failure classes. The typed errors below
// wrap these, so callers can branch with errors.Is and still reach the
// structured fields through errors.As.
var (
	// ErrTruncated is returned when fewer bytes remain than a field declares.
	ErrTruncated = errors.New("classfile: truncated input")

	// ErrNotAClassFile is returned when the leading magic is not 0xCAFEBABE.
	ErrNotAClassFile = errors.New("classfile: not a class file")

	// ErrUnknownTag is returned for an unrecognized constant pool tag byte.
	ErrUnknownTag = errors.New("classfile: unknown constant pool tag")

	// ErrMalformedConstant is returned when a constant's payload cannot be
	// decoded, e.g. invalid UTF-8 in a Utf8 entry.
	ErrMalformedConstant = errors.New("classfile: malformed constant")

	// ErrIndexOutOfRange is returned for a pool lookup at index zero,
	// beyond the pool, or at an unusable slot.
	ErrIndexOutOfRange = errors.New("classfile: constant pool index out of range")

	// ErrWrongConstantKind is returned when a pool entry resolves to a
	// different constant kind than the caller requires.
	ErrWrongConstantKind = errors.New("classfile: wrong constant kind")

	// ErrAttributeLength is returned when a specialized attribute decoder
	// consumes a different byte count than the attribute declared.
	ErrAttributeLength = errors.New("classfile: attribute length mismatch")
)

// TruncatedError reports a read past the end of the input.
type TruncatedError struct {
	Offset int // position of the failed read
	Need   int // bytes the field requires
	Have   int // bytes actually available
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("classfile: truncated input at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// NotAClassFileError reports a magic number mismatch.
type NotAClassFileError struct {
	Magic uint32
}

func (e *NotAClassFileError) Error() string {
	return fmt.Sprintf("classfile: bad magic 0x%08X, want 0xCAFEBABE", e.Magic)
}

func (e *NotAClassFileError) Unwrap() error { return ErrNotAClassFile }

// UnknownTagError reports an unrecognized constant pool tag. An entry's
// length is tag-dependent, so an unknown tag cannot be skipped over and
// aborts the decode.
type UnknownTagError struct {
	Tag   uint8
	Index uint16 // 1-based pool index of the offending entry
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("classfile: unknown constant pool tag %d at index %d", e.Tag, e.Index)
}

func (e *UnknownTagError) Unwrap() error { return ErrUnknownTag }

// MalformedConstantError reports a constant whose payload could not be
// decoded even though its tag is known.
type MalformedConstantError struct {
	Index uint16
	Tag   Tag
}

func (e *MalformedConstantError) Error() string {
	return fmt.Sprintf("classfile: malformed %v constant at index %d", e.Tag, e.Index)
}

func (e *MalformedConstantError) Unwrap() error { return ErrMalformedConstant }

// IndexError reports a constant pool lookup outside the pool's logical
// bounds, or at an unusable slot (the slot after a Long or Double).
type IndexError struct {
	Index uint16
	Size  int // logical pool size, including the reserved slot zero
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("classfile: constant pool index %d out of range (pool size %d)", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// WrongKindError reports a pool entry that resolved to a different
// constant kind than the one required.
type WrongKindError struct {
	Index uint16
	Want  Tag
	Got   Tag
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("classfile: constant pool index %d holds %v, want %v", e.Index, e.Got, e.Want)
}

func (e *WrongKindError) Unwrap() error { return ErrWrongConstantKind }

// AttributeLengthError reports a specialized attribute decoder that
// consumed a different byte count than the attribute declared.
type AttributeLengthError struct {
	Name     string
	Declared uint32
	Consumed int
}

func (e *AttributeLengthError) Error() string {
	return fmt.Sprintf("classfile: %q attribute declared %d bytes but decoder consumed %d", e.Name, e.Declared, e.Consumed)
}

func (e *AttributeLengthError) Unwrap() error { return ErrAttributeLength }

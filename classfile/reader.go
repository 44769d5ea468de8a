package classfile

import "encoding/binary"

// Reader is a sequential big-endian cursor over an in-memory class file
// image. Every read advances the position by exactly the width of the
// value requested; a read past the end of the buffer fails with a
// TruncatedError and consumes nothing. The position never decreases.
type Reader struct {
	buf []byte
	off int
}

// NewReaderBytes constructs a Reader over the provided buffer.
func NewReaderBytes(b []byte) *Reader { return &Reader{buf: b} }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

func (r *Reader) need(n int) error {
	if rem := len(r.buf) - r.off; rem < n {
		return &TruncatedError{Offset: r.off, Need: n, Have: rem}
	}
	return nil
}

// ReadU1 reads one unsigned byte.
func (r *Reader) ReadU1() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

// ReadU2 reads a big-endian uint16.
func (r *Reader) ReadU2() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

// ReadU4 reads a big-endian uint32.
func (r *Reader) ReadU4() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// ReadBytes reads exactly n bytes into a fresh slice that does not alias
// the input buffer. It never returns partially-read data.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:])
	r.off += n
	return out, nil
}

package classfile

import "fmt"

// ExceptionHandler is one row of a Code attribute's exception table. The
// pc ranges and catch_type reference are kept exactly as read; the
// decoder does not verify that they lie within the code or resolve to a
// Class entry.
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 means catch-all
}

// CodeAttribute carries a method's instruction bytes, stack and locals
// limits, exception table, and nested attributes. The instruction stream
// is captured verbatim and never decoded into individual operations.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionHandler
	Attributes     []Attribute
}

func parseCodeAttribute(r *Reader, pool ConstantPool) (*CodeAttribute, error) {
	c := &CodeAttribute{}
	var err error
	if c.MaxStack, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("reading max_stack: %w", err)
	}
	if c.MaxLocals, err = r.ReadU2(); err != nil {
		return nil, fmt.Errorf("reading max_locals: %w", err)
	}
	codeLength, err := r.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("reading code_length: %w", err)
	}
	if c.Code, err = r.ReadBytes(int(codeLength)); err != nil {
		return nil, fmt.Errorf("reading instruction bytes: %w", err)
	}

	tableLen, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading exception_table_length: %w", err)
	}
	c.ExceptionTable = make([]ExceptionHandler, tableLen)
	for i := range c.ExceptionTable {
		h := &c.ExceptionTable[i]
		if h.StartPC, err = r.ReadU2(); err != nil {
			return nil, fmt.Errorf("reading exception handler %d start_pc: %w", i, err)
		}
		if h.EndPC, err = r.ReadU2(); err != nil {
			return nil, fmt.Errorf("reading exception handler %d end_pc: %w", i, err)
		}
		if h.HandlerPC, err = r.ReadU2(); err != nil {
			return nil, fmt.Errorf("reading exception handler %d handler_pc: %w", i, err)
		}
		if h.CatchType, err = r.ReadU2(); err != nil {
			return nil, fmt.Errorf("reading exception handler %d catch_type: %w", i, err)
		}
	}

	attrCount, err := r.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("reading Code attributes_count: %w", err)
	}
	if c.Attributes, err = parseAttributes(r, pool, attrCount); err != nil {
		return nil, fmt.Errorf("parsing Code attributes: %w", err)
	}
	return c, nil
}

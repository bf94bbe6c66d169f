package bytecode

import "fmt"

// Chunk is a self-contained unit of bytecode: the instruction stream, the
// constants it references, and a line table mapping every byte of code
// back to the source line that emitted it.
type Chunk struct {
	Code      []byte
	Constants []Value
	Lines     *RunLengthEncoded[int]
}

// NewChunk returns an empty Chunk ready to be written into by a Compiler.
func NewChunk() *Chunk {
	return &Chunk{Lines: NewRunLengthEncoded[int]()}
}

// WriteByte appends a single raw byte to the instruction stream, recording
// line as its originating source line.
func (c *Chunk) WriteByte(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines.Push(line)
}

// WriteInstruction appends every byte of inst to the instruction stream,
// recording line len(inst) times in the line table.
func (c *Chunk) WriteInstruction(inst []byte, line int) {
	c.Code = append(c.Code, inst...)
	c.Lines.PushRun(line, len(inst))
}

// WriteConstant appends v to the constant pool, then emits a Constant or
// ConstantLong instruction addressing it, whichever its index fits. The
// value is appended before the index range is checked, so the pool grows
// even on the failure path below; that's fine because a Chunk whose
// WriteConstant fails is abandoned in its entirety.
func (c *Chunk) WriteConstant(v Value, line int) error {
	c.Constants = append(c.Constants, v)
	index := len(c.Constants) - 1

	switch {
	case index <= maxShortConstantIndex:
		c.WriteInstruction(encodeConstant(index), line)
		return nil
	case uint64(index) <= 0xFFFFFFFF:
		c.WriteInstruction(encodeConstantLong(uint32(index)), line)
		return nil
	default:
		return fmt.Errorf("too many constants")
	}
}

// LineAt returns the source line responsible for the instruction byte at
// offset.
func (c *Chunk) LineAt(offset int) int {
	return c.Lines.Nth(offset)
}

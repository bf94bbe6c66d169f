package vm

// RuntimeError is a dynamic failure raised while executing an already
// compiled chunk: a type mismatch on an operator, or another failure only
// detectable at execution time.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// CompileError mirrors compiler.CompileError for the one case the VM
// itself can detect a broken chunk: an opcode byte it doesn't recognize.
// That can only happen if the chunk wasn't produced by this package's own
// compiler, so it is treated as a compile-time defect, not a runtime one.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}

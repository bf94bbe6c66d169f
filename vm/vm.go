// Package vm implements the stack-based interpreter that executes a
// compiled bytecode.Chunk.
package vm

import (
	"bytes"
	"fmt"
	"os"

	"github.com/loxvm/loxvm/bytecode"
	"github.com/loxvm/loxvm/internal/tracelog"
)

// VirtualMachine interprets a single bytecode.Chunk at a time. Run resets
// the instruction pointer for each chunk but not the value stack: values a
// completed run leaves on the stack are still there when the same machine
// runs its next chunk.
type VirtualMachine struct {
	chunk *bytecode.Chunk
	ip    int
	stack *Stack
	trace bool
}

// New returns a VirtualMachine with the reference 256-entry stack bound.
func New() *VirtualMachine {
	return &VirtualMachine{stack: NewStack(DefaultStackSize)}
}

// SetTrace enables or disables the per-instruction execution trace, logged
// through internal/tracelog at Debug level.
func (vm *VirtualMachine) SetTrace(enabled bool) {
	vm.trace = enabled
}

// Run executes chunk to completion from offset 0. It returns nil on normal
// completion (an OpReturn instruction), a *RuntimeError on a dynamic type
// failure or stack overflow, or a *CompileError if it encounters a byte
// that isn't one of the known opcodes — evidence the chunk wasn't produced
// by this compiler.
func (vm *VirtualMachine) Run(chunk *bytecode.Chunk) error {
	vm.chunk = chunk
	vm.ip = 0

	for {
		offset := vm.ip
		op := bytecode.OpCode(vm.readByte())

		if vm.trace {
			var buf bytes.Buffer
			bytecode.DisassembleInstruction(vm.chunk, offset, &buf)
			tracelog.Log.Debugf("vm: stack=%v %s", vm.stack.All(), buf.String())
		}

		switch op {
		case bytecode.OpReturn:
			return nil

		case bytecode.OpConstant:
			index := int(vm.readByte())
			if err := vm.push(offset, chunk.Constants[index]); err != nil {
				return err
			}

		case bytecode.OpConstantLong:
			index := vm.readUint32LE()
			if err := vm.push(offset, chunk.Constants[index]); err != nil {
				return err
			}

		case bytecode.OpNil:
			if err := vm.push(offset, bytecode.Nil); err != nil {
				return err
			}
		case bytecode.OpTrue:
			if err := vm.push(offset, bytecode.NewBool(true)); err != nil {
				return err
			}
		case bytecode.OpFalse:
			if err := vm.push(offset, bytecode.NewBool(false)); err != nil {
				return err
			}

		case bytecode.OpNegate:
			if !vm.stack.Peek(0).IsNumber() {
				return vm.runtimeError(offset, "Operands must be numbers")
			}
			v := vm.stack.Pop()
			if err := vm.push(offset, bytecode.NewNumber(-v.Num)); err != nil {
				return err
			}

		case bytecode.OpAdd, bytecode.OpSubtract, bytecode.OpMultiply, bytecode.OpDivide:
			if err := vm.binaryArithmetic(op, offset); err != nil {
				return err
			}

		case bytecode.OpNot:
			v := vm.stack.Pop()
			if err := vm.push(offset, bytecode.NewBool(v.IsFalsey())); err != nil {
				return err
			}

		case bytecode.OpEqual:
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			if err := vm.push(offset, bytecode.NewBool(bytecode.Equal(a, b))); err != nil {
				return err
			}

		case bytecode.OpGreater, bytecode.OpLess:
			if err := vm.binaryComparison(op, offset); err != nil {
				return err
			}

		default:
			return &CompileError{Message: "Unrecognised op code"}
		}
	}
}

func (vm *VirtualMachine) binaryArithmetic(op bytecode.OpCode, offset int) error {
	if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
		return vm.runtimeError(offset, "Operands must be numbers")
	}
	b := vm.stack.Pop()
	a := vm.stack.Pop()
	var result float64
	switch op {
	case bytecode.OpAdd:
		result = a.Num + b.Num
	case bytecode.OpSubtract:
		result = a.Num - b.Num
	case bytecode.OpMultiply:
		result = a.Num * b.Num
	case bytecode.OpDivide:
		result = a.Num / b.Num
	}
	return vm.push(offset, bytecode.NewNumber(result))
}

func (vm *VirtualMachine) binaryComparison(op bytecode.OpCode, offset int) error {
	if !vm.stack.Peek(0).IsNumber() || !vm.stack.Peek(1).IsNumber() {
		return vm.runtimeError(offset, "Operands must be numbers")
	}
	b := vm.stack.Pop()
	a := vm.stack.Pop()
	var result bool
	if op == bytecode.OpGreater {
		result = a.Num > b.Num
	} else {
		result = a.Num < b.Num
	}
	return vm.push(offset, bytecode.NewBool(result))
}

// push pushes v onto the stack, routing a stack-overflow failure through
// runtimeError so every push site — not just OpConstant/OpConstantLong —
// surfaces the mandated runtime error instead of silently dropping the
// value.
func (vm *VirtualMachine) push(offset int, v bytecode.Value) error {
	if err := vm.stack.Push(v); err != nil {
		return vm.runtimeError(offset, err.Error())
	}
	return nil
}

func (vm *VirtualMachine) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VirtualMachine) readUint32LE() uint32 {
	b0, b1, b2, b3 := vm.readByte(), vm.readByte(), vm.readByte(), vm.readByte()
	return uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16 | uint32(b3)<<24
}

// runtimeError reports a runtime failure against the line that produced
// the instruction at offset, clears the stack, and returns the error to
// the caller.
func (vm *VirtualMachine) runtimeError(offset int, message string) error {
	line := vm.chunk.LineAt(offset)
	report := fmt.Sprintf("[line %d] %s", line, message)
	fmt.Fprintln(os.Stderr, report)
	tracelog.Log.Debugln("vm:", report)
	vm.stack.Reset()
	return &RuntimeError{Message: message}
}

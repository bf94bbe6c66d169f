package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxvm/loxvm/compiler"
)

// interpret compiles source and runs it to completion, returning the machine
// so the caller can inspect the value left on top of its stack (Return does
// not pop the final result), together with any compile or run error. On a
// compile error the returned machine is nil.
func interpret(t *testing.T, source string) (*VirtualMachine, error) {
	t.Helper()
	chunk, err := compiler.Compile(source)
	if err != nil {
		return nil, err
	}
	vm := New()
	return vm, vm.Run(chunk)
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   float64
	}{
		{"addition", "1 + 2", 3},
		{"unary binds tighter than plus", "-1 + 2", 1},
		{"mixed precedence and unary", "(-1 + 2) * 3 - -4", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := interpret(t, tt.source)
			require.NoError(t, err)
			require.Equal(t, 1, m.stack.Len())
			top := m.stack.Peek(0)
			assert.True(t, top.IsNumber())
			assert.Equal(t, tt.want, top.Num)
		})
	}
}

func TestBooleanLogicScenario(t *testing.T) {
	m, err := interpret(t, "!(5 - 4 > 3 * 2 == !nil)")
	require.NoError(t, err)
	top := m.stack.Peek(0)
	assert.True(t, top.Bool)
}

func TestTypeMismatchIsRuntimeError(t *testing.T) {
	_, err := interpret(t, "1 + true")
	require.Error(t, err)
	var runtimeErr *RuntimeError
	require.ErrorAs(t, err, &runtimeErr)
	assert.Equal(t, "Operands must be numbers", runtimeErr.Message)
}

func TestUnterminatedStringIsCompileError(t *testing.T) {
	_, err := compiler.Compile("\"abc")
	require.Error(t, err)
	var compileErr *compiler.CompileError
	require.ErrorAs(t, err, &compileErr)
}

func TestRuntimeErrorResetsStack(t *testing.T) {
	m, err := interpret(t, "1 + true")
	require.Error(t, err)
	assert.Equal(t, 0, m.stack.Len())
}

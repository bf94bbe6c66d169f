package bytecode

import "testing"

func TestConstantInstructionRoundTrips(t *testing.T) {
	inst := encodeConstant(42)
	if got := decodeConstantIndex(inst, 1); got != 42 {
		t.Errorf("decodeConstantIndex = %d, want 42", got)
	}
}

func TestConstantLongInstructionRoundTrips(t *testing.T) {
	for _, k := range []uint32{0, 256, 70000, 0xFFFFFFFF} {
		inst := encodeConstantLong(k)
		if got := decodeConstantLongIndex(inst, 1); got != k {
			t.Errorf("decodeConstantLongIndex(encodeConstantLong(%d)) = %d", k, got)
		}
	}
}

func TestUnknownOpcodeIsInvalid(t *testing.T) {
	if OpCode(250).IsValid() {
		t.Error("opcode 250 should not be a recognized instruction")
	}
	if !OpLess.IsValid() {
		t.Error("OpLess should be a recognized instruction")
	}
}

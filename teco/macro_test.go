package teco

import "testing"

func TestMacroInvocationRunsRegisterText(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	ip.qregs.setText('A', false, "5UA")
	if err := ip.Execute("MA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ip.qregs.get('A', false).num; got != 5 {
		t.Errorf("A = %d, want 5", got)
	}
}

func TestMacroReturnsToCallerCmdBuf(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	ip.qregs.setText('A', false, "1UB")
	if err := ip.Execute("MA 2UC"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ip.qregs.get('B', false).num; got != 1 {
		t.Errorf("B = %d, want 1", got)
	}
	if got := ip.qregs.get('C', false).num; got != 2 {
		t.Errorf("C = %d, want 2", got)
	}
}

func TestColonMacroPushesLastResult(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("") // empty buffer: ":C" can't advance
	ip.qregs.setText('A', false, ":C")
	if err := ip.Execute(":MA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := ip.exprStack.PopOperand()
	if !ok {
		t.Fatal("expected an operand left by :MA")
	}
	if v != FAILURE {
		t.Errorf("result = %d, want FAILURE (%d)", v, FAILURE)
	}
}

func TestMacroNestingOverflowThrowsMMX(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	ip.qregs.setText('A', false, "MA")
	err := ip.Execute("MA")
	if err == nil {
		t.Fatal("expected E_MMX from unbounded self-recursion")
	}
	if e, ok := AsError(err); !ok || e.Code != ErrMMX {
		t.Errorf("error = %v, want E_MMX", err)
	}
}

func TestMacroLocalRegistersDoNotLeakToCaller(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	ip.qregs.setText('A', false, "9U.X")
	if err := ip.Execute("MA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// .X was set inside the macro; execM gives the macro its own local
	// registers and puts the caller's set back when the macro returns.
	if got := ip.qregs.get('X', true).num; got != 0 {
		t.Errorf(".X = %d, want 0 after the macro returns", got)
	}
}

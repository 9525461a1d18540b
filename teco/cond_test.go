package teco

import "testing"

func TestConditionalTrueBranchOutput(t *testing.T) {
	ip, _, term := newInterpWithBuffer("")
	if err := ip.Execute("0\"E^Ayes\x1b|^Ano\x1b'"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.out.String() != "yes" {
		t.Errorf("output = %q, want %q", term.out.String(), "yes")
	}
}

func TestConditionalWithoutElseBranch(t *testing.T) {
	ip, _, term := newInterpWithBuffer("")
	if err := ip.Execute("0\"E^Ahit\x1b'"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.out.String() != "hit" {
		t.Errorf("output = %q, want %q", term.out.String(), "hit")
	}
}

func TestConditionalFalseWithoutElseBranchProducesNoOutput(t *testing.T) {
	ip, _, term := newInterpWithBuffer("")
	if err := ip.Execute("1\"E^Ahit\x1b'"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.out.String() != "" {
		t.Errorf("output = %q, want empty", term.out.String())
	}
	if ip.ifStack.depth() != 0 {
		t.Errorf("ifStack depth = %d, want 0", ip.ifStack.depth())
	}
}

func TestUnmatchedApostropheThrowsUTQ(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	err := ip.Execute("'")
	if err == nil {
		t.Fatal("expected E_UTQ")
	}
	if e, ok := AsError(err); !ok || e.Code != ErrUTQ {
		t.Errorf("error = %v, want E_UTQ", err)
	}
}

func TestNestedConditionals(t *testing.T) {
	ip, _, term := newInterpWithBuffer("")
	// Outer true (0"E), inner false (1"E) takes inner's else branch.
	if err := ip.Execute("0\"E1\"E^Ainner-yes\x1b|^Ainner-no\x1b''"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.out.String() != "inner-no" {
		t.Errorf("output = %q, want %q", term.out.String(), "inner-no")
	}
}

func TestUnrecognizedConditionLetterThrowsIQN(t *testing.T) {
	ip, _, _ := newInterpWithBuffer("")
	err := ip.Execute("1\"Z'")
	if err == nil {
		t.Fatal("expected E_IQN")
	}
	if e, ok := AsError(err); !ok || e.Code != ErrIQN {
		t.Errorf("error = %v, want E_IQN", err)
	}
}

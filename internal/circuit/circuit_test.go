package circuit

import (
	"testing"

	"github.com/ccoin/zkpcore/pkg/canon"
)

func TestGateAlgebraOnBooleans(t *testing.T) {
	for a := 0; a <= 1; a++ {
		for b := 0; b <= 1; b++ {
			if got, want := AND(a, b), a&b; got != want {
				t.Errorf("AND(%d,%d) = %d, want %d", a, b, got, want)
			}
			if got, want := OR(a, b), a|b; got != want {
				t.Errorf("OR(%d,%d) = %d, want %d", a, b, got, want)
			}
			if got, want := XOR(a, b), a^b; got != want {
				t.Errorf("XOR(%d,%d) = %d, want %d", a, b, got, want)
			}
			wantImplies := 1
			if a == 1 && b == 0 {
				wantImplies = 0
			}
			if got := IMPLIES(a, b); got != wantImplies {
				t.Errorf("IMPLIES(%d,%d) = %d, want %d", a, b, got, wantImplies)
			}
		}
	}
	if NOT(0) != 1 || NOT(1) != 0 {
		t.Error("NOT truth table wrong")
	}
}

func TestCheckMVPMatchesCommitment(t *testing.T) {
	axioms := []string{"P", "P -> Q"}
	if !CheckMVP(axioms, canon.HashAxiomsCommitmentHex(axioms)) {
		t.Fatal("expected the matching commitment to satisfy the MVP circuit")
	}
	commitment := "bad"
	if CheckMVP(axioms, commitment) {
		t.Fatal("expected mismatch to fail")
	}
}

func TestCheckDerivationValidTrace(t *testing.T) {
	axioms := []string{"P", "P -> Q", "Q -> R"}
	if !CheckDerivation(axioms, "R", []string{"Q", "R"}) {
		t.Fatal("expected a valid derivation trace to satisfy the circuit")
	}
}

func TestCheckDerivationRejectsEmptyTrace(t *testing.T) {
	axioms := []string{"P", "P -> Q"}
	if CheckDerivation(axioms, "Q", nil) {
		t.Fatal("empty trace must never satisfy the derivation circuit")
	}
}

func TestCheckDerivationRejectsUnsupportedStep(t *testing.T) {
	axioms := []string{"P -> Q"}
	// "Q" isn't derivable since P is never a known fact.
	if CheckDerivation(axioms, "Q", []string{"Q"}) {
		t.Fatal("expected unsupported step to fail the circuit")
	}
}

func TestCheckDerivationAcceptsFactStep(t *testing.T) {
	axioms := []string{"P"}
	if !CheckDerivation(axioms, "P", []string{"P"}) {
		t.Fatal("a copy of a fact consequent must satisfy the circuit")
	}
}

package canon

import "testing"

func TestNormalizeCollapsesWhitespaceAndTrims(t *testing.T) {
	got := Normalize("  P   \t->\nQ  ")
	want := "P -> Q"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"P -> Q", "  multi   space  ", "no-change", ""}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize(%q) not idempotent: %q != %q", in, once, twice)
		}
	}
}

func TestCanonicalizeAxiomsSortsDedupesAndIgnoresOrder(t *testing.T) {
	a1 := []string{"Q", "P", "P -> Q"}
	a2 := []string{"P -> Q", "P", "Q"}
	a3 := []string{"P", "P -> Q", "Q", "P"} // duplicate P

	c1 := CanonicalizeAxioms(a1)
	c2 := CanonicalizeAxioms(a2)
	c3 := CanonicalizeAxioms(a3)

	if len(c1) != 3 {
		t.Fatalf("expected 3 unique axioms, got %d: %v", len(c1), c1)
	}
	if HashAxiomsCommitmentHex(a1) != HashAxiomsCommitmentHex(a2) {
		t.Errorf("commitment not order-independent: %v vs %v", a1, a2)
	}
	if HashAxiomsCommitmentHex(a1) != HashAxiomsCommitmentHex(a3) {
		t.Errorf("commitment not dedup-stable: %v vs %v", a1, a3)
	}
	for i := 1; i < len(c2); i++ {
		if c2[i-1] > c2[i] {
			t.Fatalf("CanonicalizeAxioms not sorted: %v", c2)
		}
	}
}

func TestHashTheoremWhitespaceInvariant(t *testing.T) {
	if HashTheoremHex("Q") != HashTheoremHex(Normalize("  Q  ")) {
		t.Error("hash_theorem not whitespace invariant")
	}
}

func TestHashAxiomsCommitmentDeterministic(t *testing.T) {
	axioms := []string{"P", "P -> Q"}
	if HashAxiomsCommitmentHex(axioms) != HashAxiomsCommitmentHex(axioms) {
		t.Error("commitment not deterministic across calls")
	}
	if len(HashAxiomsCommitmentHex(axioms)) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(HashAxiomsCommitmentHex(axioms)))
	}
}

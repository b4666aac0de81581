package verifier

import (
	"testing"

	"github.com/ccoin/zkpcore/pkg/prover"
)

func TestVerifyAcceptsItsOwnSimulatedProof(t *testing.T) {
	p := prover.New()
	proof, err := p.GenerateProof("Q", []string{"P", "P -> Q"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := New()
	if !v.Verify(proof) {
		t.Fatal("expected the verifier to accept a freshly generated proof")
	}
	if v.RejectionCount() != 0 {
		t.Fatalf("RejectionCount() = %d, want 0", v.RejectionCount())
	}
}

func TestVerifyNilProofIsRejectedNotPanicked(t *testing.T) {
	v := New()
	if v.Verify(nil) {
		t.Fatal("expected a nil proof to be rejected")
	}
	if v.RejectionCount() != 1 {
		t.Fatalf("RejectionCount() = %d, want 1", v.RejectionCount())
	}
}

func TestVerifyMapRejectsMalformedJSONWithoutPanicking(t *testing.T) {
	v := New()
	if v.VerifyMap(map[string]interface{}{"not_proof_data": true}) {
		t.Fatal("expected a malformed map to be rejected")
	}
}

func TestVerifyMapRoundTripsProofToMap(t *testing.T) {
	p := prover.New()
	proof, err := p.GenerateProof("Q", []string{"P", "P -> Q"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := New()
	if !v.VerifyMap(proof.ToMap()) {
		t.Fatal("expected VerifyMap(proof.ToMap()) to accept a valid proof")
	}
}

package simulated

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestGenerateProofModusPonens(t *testing.T) {
	b := &Backend{}
	p, err := b.GenerateProof("Q", []string{"P", "P -> Q"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.SizeBytes != 160 {
		t.Fatalf("SizeBytes = %d, want 160", p.SizeBytes)
	}
	if got, want := p.Metadata["num_axioms"], 2; got != want {
		t.Fatalf("metadata.num_axioms = %v, want %v", got, want)
	}
	if got, want := p.PublicInputs["theorem"], "Q"; got != want {
		t.Fatalf("public_inputs.theorem = %v, want %v", got, want)
	}

	wantHash := sha256.Sum256([]byte("Q"))
	if got, want := p.PublicInputs["theorem_hash"], hex.EncodeToString(wantHash[:]); got != want {
		t.Fatalf("public_inputs.theorem_hash = %v, want %v", got, want)
	}

	ok, err := b.VerifyProof(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("verifier must accept a proof it just generated")
	}
}

func TestGenerateProofEmptyInputsFail(t *testing.T) {
	b := &Backend{}
	if _, err := b.GenerateProof("", []string{"P"}, nil); err == nil {
		t.Fatal("expected an error for an empty theorem")
	}
	if _, err := b.GenerateProof("Q", nil, nil); err == nil {
		t.Fatal("expected an error for an empty axiom list")
	}
}

func TestVerifyProofRejectsTampering(t *testing.T) {
	b := &Backend{}
	p, err := b.GenerateProof("Q", []string{"P", "P -> Q"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("truncated proof data", func(t *testing.T) {
		tampered := *p
		tampered.ProofData = p.ProofData[:50]
		tampered.SizeBytes = len(tampered.ProofData)
		ok, _ := b.VerifyProof(&tampered)
		if ok {
			t.Fatal("expected truncated proof_data to be rejected")
		}
	})

	t.Run("dropped proof_system metadata", func(t *testing.T) {
		tampered := *p
		tampered.Metadata = map[string]interface{}{}
		ok, _ := b.VerifyProof(&tampered)
		if ok {
			t.Fatal("expected missing metadata.proof_system to be rejected")
		}
	})

	t.Run("tampered theorem_hash", func(t *testing.T) {
		tampered := *p
		inputs := map[string]interface{}{}
		for k, v := range p.PublicInputs {
			inputs[k] = v
		}
		inputs["theorem_hash"] = "not-a-real-hash"
		tampered.PublicInputs = inputs
		ok, _ := b.VerifyProof(&tampered)
		if ok {
			t.Fatal("expected tampered theorem_hash to be rejected")
		}
	})
}

func TestVerifyProofAcceptsLegacyUnnormalizedHash(t *testing.T) {
	b := &Backend{}
	p, err := b.GenerateProof("  Q  ", []string{"P", "P -> Q"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	legacy := sha256.Sum256([]byte(p.PublicInputs["theorem"].(string)))
	p.PublicInputs["theorem_hash"] = hex.EncodeToString(legacy[:])

	ok, err := b.VerifyProof(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("verifier must accept the legacy (non-normalized) theorem hash for backward compatibility")
	}
}

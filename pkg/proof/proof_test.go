package proof

import (
	"reflect"
	"testing"
)

func TestToMapFromMapRoundTrip(t *testing.T) {
	original := New(
		[]byte{1, 2, 3, 4},
		map[string]interface{}{"theorem": "Q", "theorem_hash": "abcd"},
		map[string]interface{}{"proof_system": "Groth16 (simulated)"},
		1700000000.5,
	)

	roundTripped, err := FromMap(original.ToMap())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(original.ProofData, roundTripped.ProofData) {
		t.Errorf("ProofData mismatch: %v != %v", original.ProofData, roundTripped.ProofData)
	}
	if !reflect.DeepEqual(original.PublicInputs, roundTripped.PublicInputs) {
		t.Errorf("PublicInputs mismatch: %v != %v", original.PublicInputs, roundTripped.PublicInputs)
	}
	if original.Timestamp != roundTripped.Timestamp {
		t.Errorf("Timestamp mismatch: %v != %v", original.Timestamp, roundTripped.Timestamp)
	}
	if original.SizeBytes != roundTripped.SizeBytes {
		t.Errorf("SizeBytes mismatch: %v != %v", original.SizeBytes, roundTripped.SizeBytes)
	}
}

func TestFromMapRejectsMissingProofData(t *testing.T) {
	if _, err := FromMap(map[string]interface{}{}); err == nil {
		t.Fatal("expected an error for a map with no proof_data")
	}
}

func TestNewStampsSizeBytes(t *testing.T) {
	p := New(make([]byte, 160), nil, nil, 0)
	if p.SizeBytes != 160 {
		t.Fatalf("SizeBytes = %d, want 160", p.SizeBytes)
	}
}

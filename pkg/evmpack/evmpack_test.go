package evmpack

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"
)

const (
	theoremHashHex      = "4ae81572f06e1b88fd5ced7a1a000945432e83e1551e6f721ee9c00b8cc33260"
	axiomsCommitmentHex = "6c30b34f8fa89e3d91a9d296f6015203ca2b0fa5338db443abd6e957bfacef38"
)

func TestPackReturnsFourInRangeScalars(t *testing.T) {
	packed, err := Pack(theoremHashHex, axiomsCommitmentHex, 1, "TDFOL_v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scalars := []string{packed.TheoremHashFr, packed.AxiomsCommitmentFr, packed.CircuitVersionFr, packed.RulesetIDFr}
	for i, s := range scalars {
		b, err := hex.DecodeString(s)
		if err != nil {
			t.Fatalf("scalar[%d] not valid hex: %v", i, err)
		}
		if len(b) != 32 {
			t.Fatalf("scalar[%d] length = %d, want 32 bytes", i, len(b))
		}
		n := new(big.Int).SetBytes(b)
		if n.Cmp(FrModulus) >= 0 {
			t.Fatalf("scalar[%d] = %s, not < Fr modulus", i, n.String())
		}
	}
}

func TestPackCircuitVersionScalarDecodesToInteger(t *testing.T) {
	packed, err := Pack(theoremHashHex, axiomsCommitmentHex, 1, "TDFOL_v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := hex.DecodeString(packed.CircuitVersionFr)
	if got := new(big.Int).SetBytes(b).Uint64(); got != 1 {
		t.Fatalf("circuit_version_fr decodes to %d, want 1", got)
	}
}

func TestPackRulesetIDScalarMatchesShaModFr(t *testing.T) {
	packed, err := Pack(theoremHashHex, axiomsCommitmentHex, 1, "TDFOL_v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := sha256.Sum256([]byte("TDFOL_v1"))
	want := new(big.Int).SetBytes(h[:])
	want.Mod(want, FrModulus)

	b, _ := hex.DecodeString(packed.RulesetIDFr)
	got := new(big.Int).SetBytes(b)
	if got.Cmp(want) != 0 {
		t.Fatalf("ruleset_id_fr = %s, want %s", got.String(), want.String())
	}
}

func TestPackRejectsNonHexInput(t *testing.T) {
	if _, err := Pack("not-hex", axiomsCommitmentHex, 1, "TDFOL_v1"); err == nil {
		t.Fatal("expected an error for non-hex theorem_hash")
	}
}

func TestPackBatchFoldsOverStatements(t *testing.T) {
	statements := []struct {
		TheoremHashHex      string
		AxiomsCommitmentHex string
		CircuitVersion      uint64
		RulesetID           string
	}{
		{theoremHashHex, axiomsCommitmentHex, 1, "TDFOL_v1"},
		{theoremHashHex, axiomsCommitmentHex, 2, "TDFOL_v1"},
	}
	packed, err := PackBatch(statements)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(packed) != 2 {
		t.Fatalf("len(packed) = %d, want 2", len(packed))
	}
}

// Package evmpack implements EVM-compatible packing of public inputs into
// four BN254 scalar-field elements for Solidity uint256[4] verifier calls
// (spec §4.9).
package evmpack

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// FrModulus is the BN254 scalar field modulus.
var FrModulus, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// PackedInputs holds the four packed scalars, each as 32-byte big-endian
// hex; Ints returns their uint256 integer forms.
type PackedInputs struct {
	TheoremHashFr      string
	AxiomsCommitmentFr string
	CircuitVersionFr   string
	RulesetIDFr        string
}

// Ints returns the four scalars' integer (uint256) forms, in the same
// order as the hex fields.
func (p PackedInputs) Ints() ([4]*uint256.Int, error) {
	var out [4]*uint256.Int
	hexes := [4]string{p.TheoremHashFr, p.AxiomsCommitmentFr, p.CircuitVersionFr, p.RulesetIDFr}
	for i, h := range hexes {
		b, err := hex.DecodeString(h)
		if err != nil {
			return out, zkperr.Wrap(zkperr.KindInvalidInput, "packed_input", err)
		}
		out[i] = new(uint256.Int).SetBytes(b)
	}
	return out, nil
}

func modFrHex(b []byte) string {
	n := new(big.Int).SetBytes(b)
	n.Mod(n, FrModulus)
	var u uint256.Int
	u.SetFromBig(n)
	return hex.EncodeToString(padTo32(u.Bytes()))
}

func padTo32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// Pack implements spec §4.9: four 32-byte big-endian hex scalars, each
// reduced modulo BN254_FR_MODULUS.
//
//  1. theorem_hash_fr      = be_uint(theoremHashHex) mod Fr
//  2. axioms_commitment_fr = be_uint(axiomsCommitmentHex) mod Fr
//  3. circuit_version_fr   = circuitVersion (always < Fr)
//  4. ruleset_id_fr        = be_uint(sha256(rulesetID)) mod Fr
func Pack(theoremHashHex, axiomsCommitmentHex string, circuitVersion uint64, rulesetID string) (PackedInputs, error) {
	thBytes, err := hex.DecodeString(theoremHashHex)
	if err != nil {
		return PackedInputs{}, zkperr.Wrap(zkperr.KindInvalidInput, "theorem_hash_hex", err)
	}
	acBytes, err := hex.DecodeString(axiomsCommitmentHex)
	if err != nil {
		return PackedInputs{}, zkperr.Wrap(zkperr.KindInvalidInput, "axioms_commitment_hex", err)
	}

	versionBig := new(big.Int).SetUint64(circuitVersion)
	versionBig.Mod(versionBig, FrModulus)
	var versionU uint256.Int
	versionU.SetFromBig(versionBig)

	rulesetHash := sha256.Sum256([]byte(rulesetID))

	return PackedInputs{
		TheoremHashFr:      modFrHex(thBytes),
		AxiomsCommitmentFr: modFrHex(acBytes),
		CircuitVersionFr:   hex.EncodeToString(padTo32(versionU.Bytes())),
		RulesetIDFr:        modFrHex(rulesetHash[:]),
	}, nil
}

// PackBatch folds Pack over a list of statements.
func PackBatch(statements []struct {
	TheoremHashHex      string
	AxiomsCommitmentHex string
	CircuitVersion      uint64
	RulesetID           string
}) ([]PackedInputs, error) {
	out := make([]PackedInputs, 0, len(statements))
	for _, s := range statements {
		p, err := Pack(s.TheoremHashHex, s.AxiomsCommitmentHex, s.CircuitVersion, s.RulesetID)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

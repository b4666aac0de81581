// Package statement implements the public Statement record and the
// circuit-reference string parser/formatter (spec §4.5).
package statement

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// Statement is the public record the verifier sees; the proof binds to it.
type Statement struct {
	TheoremHash      string // hex32
	AxiomsCommitment string // hex32
	CircuitVersion   uint64
	RulesetID        string
}

// ToFieldElements packs the statement into four BN254 Fr elements:
// [theorem_hash mod Fr, axioms_commitment mod Fr, circuit_version,
// sha256(ruleset_id) mod Fr]. Distinct from the EVM packer (pkg/evmpack),
// which serializes these to 32-byte big-endian hex for Solidity calls.
func (s Statement) ToFieldElements() ([4]fr.Element, error) {
	var out [4]fr.Element

	thBytes, err := hex.DecodeString(s.TheoremHash)
	if err != nil {
		return out, zkperr.Wrap(zkperr.KindInvalidInput, "theorem_hash", err)
	}
	out[0].SetBigInt(new(big.Int).SetBytes(thBytes))

	acBytes, err := hex.DecodeString(s.AxiomsCommitment)
	if err != nil {
		return out, zkperr.Wrap(zkperr.KindInvalidInput, "axioms_commitment", err)
	}
	out[1].SetBigInt(new(big.Int).SetBytes(acBytes))

	out[2].SetUint64(s.CircuitVersion)

	rsHash := sha256.Sum256([]byte(s.RulesetID))
	out[3].SetBigInt(new(big.Int).SetBytes(rsHash[:]))

	return out, nil
}

var circuitIDRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ParseCircuitRef strictly parses "<circuit_id>@v<u64>".
func ParseCircuitRef(ref string) (circuitID string, version uint64, err error) {
	idx := strings.LastIndex(ref, "@v")
	if idx < 0 {
		return "", 0, zkperr.New(zkperr.KindInvalidInput, "circuit_ref", "missing '@v' version suffix: "+ref)
	}

	id := ref[:idx]
	verStr := ref[idx+2:]

	if id == "" || !circuitIDRe.MatchString(id) {
		return "", 0, zkperr.New(zkperr.KindInvalidInput, "circuit_ref", "invalid circuit id: "+ref)
	}
	if verStr == "" {
		return "", 0, zkperr.New(zkperr.KindInvalidInput, "circuit_ref", "missing version: "+ref)
	}

	v, err := strconv.ParseUint(verStr, 10, 64)
	if err != nil {
		return "", 0, zkperr.New(zkperr.KindInvalidInput, "circuit_ref", "non-decimal or out-of-range version: "+ref)
	}

	return id, v, nil
}

// ParseCircuitRefLenient accepts both the strict "id@vN" form and a bare
// id (defaulted to version 1). Illegal characters are still rejected.
func ParseCircuitRefLenient(ref string) (circuitID string, version uint64, err error) {
	if strings.Contains(ref, "@") {
		return ParseCircuitRef(ref)
	}
	if ref == "" || !circuitIDRe.MatchString(ref) {
		return "", 0, zkperr.New(zkperr.KindInvalidInput, "circuit_ref", "invalid circuit id: "+ref)
	}
	return ref, 1, nil
}

// FormatCircuitRef is the reverse of ParseCircuitRef.
func FormatCircuitRef(circuitID string, version uint64) string {
	return fmt.Sprintf("%s@v%d", circuitID, version)
}

// ProofType identifies the backend family a proof statement targets.
type ProofType string

const (
	ProofTypeSimulated ProofType = "simulated"
	ProofTypeGroth16   ProofType = "groth16"
)

// ProofStatement bundles the public statement with circuit identification
// for routing.
type ProofStatement struct {
	Statement    Statement
	CircuitID    string
	ProofType    ProofType
	WitnessCount int
}

package groth16

import (
	"encoding/json"
	"fmt"
)

// witnessWire is the stdin JSON object sent to the native prover's `prove`
// subcommand (spec §4.8). Keys placed in Extra are emitted alongside the
// known fields when marshaling, so fields the adapter doesn't know about
// still reach the binary. There is no custom unmarshaling: decoding into a
// witnessWire drops unknown keys.
type witnessWire struct {
	PrivateAxioms       []string `json:"private_axioms"`
	Theorem             string   `json:"theorem"`
	AxiomsCommitmentHex string   `json:"axioms_commitment_hex"`
	TheoremHashHex      string   `json:"theorem_hash_hex"`
	CircuitVersion      uint64   `json:"circuit_version"`
	RulesetID           string   `json:"ruleset_id"`
	SecurityLevel       *int     `json:"security_level,omitempty"`
	IntermediateSteps   []string `json:"intermediate_steps,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// MarshalJSON folds Extra's fields in alongside the known ones, so unknown
// keys round-trip through this adapter untouched.
func (w witnessWire) MarshalJSON() ([]byte, error) {
	type alias witnessWire
	base, err := json.Marshal(alias(w))
	if err != nil {
		return nil, err
	}
	if len(w.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range w.Extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// proofWire is the stdout JSON object the native prover's `prove`
// subcommand emits on success.
type proofWire struct {
	ProofA       json.RawMessage   `json:"proof_a"`
	ProofB       json.RawMessage   `json:"proof_b"`
	ProofC       json.RawMessage   `json:"proof_c"`
	PublicInputs []json.RawMessage `json:"public_inputs"` // [theorem_hash, axioms_commitment, circuit_version, ruleset_id]
	Timestamp    *float64          `json:"timestamp,omitempty"`
	Version      *string           `json:"version,omitempty"`
}

// publicInputString coerces one public_inputs element to a string.
// circuit_version may arrive as either a JSON string or a bare JSON number
// (the native prover is free to emit either), so this accepts both.
func publicInputString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("public input %s is neither a string nor a number", raw)
}

// setupReportWire is the stdout JSON the native binary emits for a fresh
// `setup` invocation.
type setupReportWire struct {
	Status  string `json:"status"`
	Version uint64 `json:"version"`
}

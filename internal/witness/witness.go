// Package witness implements witness generation, validation, and
// consistency checking for the ZKP core (spec §4.4).
package witness

import (
	"sync"

	"github.com/ccoin/zkpcore/internal/circuit"
	"github.com/ccoin/zkpcore/pkg/canon"
	"github.com/ccoin/zkpcore/pkg/statement"
	"github.com/ccoin/zkpcore/pkg/tdfol"
	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// DefaultRulesetID is the only ruleset this core's forward-chaining engine
// understands.
const DefaultRulesetID = "TDFOL_v1"

// Witness is the private record binding axioms and an optional derivation
// trace to a public statement. It must never cross the verifier boundary.
type Witness struct {
	Axioms              []string // sorted, unique, canonical
	Theorem             string
	IntermediateSteps   []string
	AxiomsCommitmentHex string
	CircuitVersion      uint64
	RulesetID           string
}

// Manager generates and caches witnesses, keyed by axioms commitment hex.
type Manager struct {
	mu    sync.Mutex
	cache map[string]*Witness
}

// NewManager creates an empty witness manager.
func NewManager() *Manager {
	return &Manager{cache: make(map[string]*Witness)}
}

// GenerateWitness canonicalizes axioms, computes the commitment, and — if
// circuitVersion >= 2 and rulesetID == "TDFOL_v1" and intermediateSteps is
// nil — attempts to derive a trace via the TDFOL_v1 fixpoint (empty slice
// if underivable). Results are cached by commitment hex.
func (m *Manager) GenerateWitness(axioms []string, theorem string, intermediateSteps []string, circuitVersion uint64, rulesetID string) (*Witness, error) {
	if len(axioms) == 0 {
		return nil, zkperr.New(zkperr.KindInvalidInput, "axioms", "axiom list must not be empty")
	}
	if rulesetID == "" {
		rulesetID = DefaultRulesetID
	}
	if circuitVersion == 0 {
		circuitVersion = 1
	}

	canonical := canon.CanonicalizeAxioms(axioms)
	commitmentHex := canon.HashAxiomsCommitmentHex(canonical)

	steps := intermediateSteps
	if steps == nil && circuitVersion >= 2 && rulesetID == DefaultRulesetID {
		holds, trace, err := tdfol.Derive(canonical, theorem)
		if err != nil {
			return nil, err
		}
		if holds {
			steps = trace
		}
	}
	if steps == nil {
		steps = []string{}
	}

	w := &Witness{
		Axioms:              canonical,
		Theorem:             theorem,
		IntermediateSteps:   steps,
		AxiomsCommitmentHex: commitmentHex,
		CircuitVersion:      circuitVersion,
		RulesetID:           rulesetID,
	}

	m.mu.Lock()
	m.cache[commitmentHex] = w
	m.mu.Unlock()

	return w, nil
}

// ValidateWitness performs structural checks, recomputes the commitment,
// and optionally checks witness count and axiom-set equality (after
// canonicalization) against the caller's expectations.
func ValidateWitness(w *Witness, expectedCount int, expectedAxioms []string) bool {
	if w == nil {
		return false
	}
	if canon.HashAxiomsCommitmentHex(w.Axioms) != w.AxiomsCommitmentHex {
		return false
	}
	if expectedCount > 0 && len(w.Axioms) != expectedCount {
		return false
	}
	if expectedAxioms != nil {
		want := canon.CanonicalizeAxioms(expectedAxioms)
		if len(want) != len(w.Axioms) {
			return false
		}
		for i := range want {
			if want[i] != w.Axioms[i] {
				return false
			}
		}
	}
	return true
}

// CreateProofStatement builds the public statement bundle for a witness.
func CreateProofStatement(w *Witness, theorem string, circuitID string) statement.ProofStatement {
	if circuitID == "" {
		circuitID = "knowledge_of_axioms"
	}
	stmt := statement.Statement{
		TheoremHash:      canon.HashTheoremHex(theorem),
		AxiomsCommitment: w.AxiomsCommitmentHex,
		CircuitVersion:   w.CircuitVersion,
		RulesetID:        w.RulesetID,
	}
	proofType := statement.ProofTypeSimulated
	return statement.ProofStatement{
		Statement:    stmt,
		CircuitID:    circuitID,
		ProofType:    proofType,
		WitnessCount: len(w.Axioms),
	}
}

// VerifyWitnessConsistency dispatches to the circuit matching the
// statement's declared version and reports whether the circuit
// constraints are satisfied by (w, stmt).
func VerifyWitnessConsistency(w *Witness, stmt statement.Statement) bool {
	if w == nil {
		return false
	}
	if w.AxiomsCommitmentHex != stmt.AxiomsCommitment {
		return false
	}
	if w.CircuitVersion != stmt.CircuitVersion {
		return false
	}
	if w.RulesetID != stmt.RulesetID {
		return false
	}

	if stmt.CircuitVersion >= 2 && stmt.RulesetID == circuit.RulesetTDFOLv1 {
		return circuit.CheckDerivation(w.Axioms, w.Theorem, w.IntermediateSteps)
	}
	return circuit.CheckMVP(w.Axioms, stmt.AxiomsCommitment)
}

package circuit

import (
	"github.com/ccoin/zkpcore/pkg/canon"
	"github.com/ccoin/zkpcore/pkg/tdfol"
)

// RulesetTDFOLv1 is the only ruleset id recognized by the derivation circuit.
const RulesetTDFOLv1 = "TDFOL_v1"

// CheckMVP implements circuit_version == 1: the prover knows an axiom set
// whose commitment equals the statement's axioms_commitment.
func CheckMVP(axioms []string, axiomsCommitmentHex string) bool {
	return canon.HashAxiomsCommitmentHex(axioms) == axiomsCommitmentHex
}

// CheckDerivation implements circuit_version >= 2 with ruleset TDFOL_v1:
// intermediateSteps must be a non-empty valid forward-chaining trace for
// (axioms, theorem), modeled as R1CS constraints per spec §4.3 — each step
// must be either a fact's consequent or the consequent of an implication
// whose antecedent already appears in known_so_far.
func CheckDerivation(axioms []string, theorem string, intermediateSteps []string) bool {
	if len(intermediateSteps) == 0 {
		return false
	}

	parsed, err := tdfol.ParseAxioms(axioms)
	if err != nil {
		return false
	}
	theoremAtom, err := tdfol.ParseTheorem(theorem)
	if err != nil {
		return false
	}

	known := make(map[string]bool)
	facts := make(map[string]bool)
	var implications []tdfol.Axiom
	for _, a := range parsed {
		if a.Kind == tdfol.KindFact {
			known[a.Consequent] = true
			facts[a.Consequent] = true
		} else {
			implications = append(implications, a)
		}
	}

	for _, step := range intermediateSteps {
		satisfied := facts[step]
		if !satisfied {
			for _, imp := range implications {
				if imp.Consequent == step && known[imp.Antecedent] {
					satisfied = true
					break
				}
			}
		}
		if !satisfied {
			return false
		}
		known[step] = true
	}

	return known[theoremAtom]
}

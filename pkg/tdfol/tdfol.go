// Package tdfol implements the TDFOL_v1 fragment: a minimal propositional
// Horn logic of facts and implications, with a forward-chaining fixpoint
// deciding derivability and producing a constraint-friendly trace.
package tdfol

import (
	"regexp"
	"strings"

	"github.com/ccoin/zkpcore/pkg/zkperr"
)

var atomRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// AxiomKind distinguishes a fact from an implication.
type AxiomKind int

const (
	KindFact AxiomKind = iota
	KindImplication
)

// Axiom is a single parsed TDFOL_v1 axiom: a fact `P` or an implication
// `P -> Q`.
type Axiom struct {
	Kind       AxiomKind
	Antecedent string // empty for facts
	Consequent string
}

// IsAtom reports whether s matches the TDFOL_v1 atom grammar.
func IsAtom(s string) bool {
	return atomRe.MatchString(s)
}

// ParseAxiom parses a single axiom: either a bare atom (a fact) or
// "<atom> -> <atom>" (exactly one "->"). Returns SyntaxError on anything
// outside the fragment.
func ParseAxiom(text string) (Axiom, error) {
	parts := strings.Split(text, "->")
	switch len(parts) {
	case 1:
		atom := strings.TrimSpace(parts[0])
		if !IsAtom(atom) {
			return Axiom{}, zkperr.New(zkperr.KindSyntaxError, "axiom", "not a valid atom: "+text)
		}
		return Axiom{Kind: KindFact, Consequent: atom}, nil
	case 2:
		ante := strings.TrimSpace(parts[0])
		cons := strings.TrimSpace(parts[1])
		if !IsAtom(ante) || !IsAtom(cons) {
			return Axiom{}, zkperr.New(zkperr.KindSyntaxError, "axiom", "not a valid implication: "+text)
		}
		return Axiom{Kind: KindImplication, Antecedent: ante, Consequent: cons}, nil
	default:
		return Axiom{}, zkperr.New(zkperr.KindSyntaxError, "axiom", "exactly one '->' allowed: "+text)
	}
}

// ParseTheorem parses a theorem string: must be a bare atom.
func ParseTheorem(text string) (string, error) {
	atom := strings.TrimSpace(text)
	if !IsAtom(atom) {
		return "", zkperr.New(zkperr.KindSyntaxError, "theorem", "not a valid atom: "+text)
	}
	return atom, nil
}

// ParseAxioms parses every element of axiomTexts, in order.
func ParseAxioms(axiomTexts []string) ([]Axiom, error) {
	out := make([]Axiom, 0, len(axiomTexts))
	for _, t := range axiomTexts {
		a, err := ParseAxiom(t)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Derive runs the forward-chaining fixpoint over axiomTexts and reports
// whether theoremText is derivable, along with the ordered trace of newly
// added consequents. Ties within a pass are broken by the input order of
// implications. Returns SyntaxError if any axiom/theorem is outside the
// TDFOL_v1 fragment.
func Derive(axiomTexts []string, theoremText string) (holds bool, trace []string, err error) {
	axioms, err := ParseAxioms(axiomTexts)
	if err != nil {
		return false, nil, err
	}
	theorem, err := ParseTheorem(theoremText)
	if err != nil {
		return false, nil, err
	}

	known := make(map[string]bool)
	var implications []Axiom
	for _, a := range axioms {
		if a.Kind == KindFact {
			known[a.Consequent] = true
		} else {
			implications = append(implications, a)
		}
	}

	trace = []string{}
	for {
		addedThisPass := false
		for _, imp := range implications {
			if known[imp.Antecedent] && !known[imp.Consequent] {
				known[imp.Consequent] = true
				trace = append(trace, imp.Consequent)
				addedThisPass = true
			}
		}
		if !addedThisPass {
			break
		}
	}

	return known[theorem], trace, nil
}

// EvaluateHolds reports whether theoremText is derivable from axiomTexts.
// Total on valid syntax; returns SyntaxError otherwise.
func EvaluateHolds(axiomTexts []string, theoremText string) (bool, error) {
	holds, _, err := Derive(axiomTexts, theoremText)
	return holds, err
}

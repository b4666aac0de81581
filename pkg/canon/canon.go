// Package canon implements deterministic, order-independent canonicalization
// and commitment hashing for theorem/axiom text, per the canonicalization
// component of the ZKP core.
package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFD, collapses any run of whitespace to a
// single space, and trims leading/trailing whitespace. No case folding.
// Normalize is total: it never fails on valid UTF-8 input.
func Normalize(text string) string {
	nfd := norm.NFD.String(text)

	var b strings.Builder
	b.Grow(len(nfd))
	inSpace := false
	for _, r := range nfd {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			inSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CanonicalizeTheorem normalizes a theorem string.
func CanonicalizeTheorem(theorem string) string {
	return Normalize(theorem)
}

// CanonicalizeAxioms normalizes every element, sorts ascending by codepoint,
// then deduplicates while preserving sorted order.
func CanonicalizeAxioms(axioms []string) []string {
	normalized := make([]string, len(axioms))
	for i, a := range axioms {
		normalized[i] = Normalize(a)
	}
	sort.Strings(normalized)

	out := make([]string, 0, len(normalized))
	for i, a := range normalized {
		if i > 0 && a == normalized[i-1] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// HashTheorem returns the SHA-256 digest of the normalized theorem, UTF-8 encoded.
func HashTheorem(theorem string) [32]byte {
	return sha256.Sum256([]byte(Normalize(theorem)))
}

// HashTheoremHex is the hex form of HashTheorem.
func HashTheoremHex(theorem string) string {
	h := HashTheorem(theorem)
	return hex.EncodeToString(h[:])
}

// axiomsCommitmentDoc mirrors the canonical JSON document hashed for the
// axioms commitment: sorted keys, compact separators.
type axiomsCommitmentDoc struct {
	AxiomCount int      `json:"axiom_count"`
	Axioms     []string `json:"axioms"`
}

// canonicalJSON marshals v with sorted keys (encoding/json emits struct
// fields in declaration order, so callers declare fields alphabetically by
// JSON key) and compact separators (encoding/json's default Marshal output has none of
// Python's extra whitespace, matching `separators=(",", ":")`).
func canonicalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// HashAxiomsCommitment hashes the canonical JSON document with sorted keys:
// {"axiom_count": len, "axioms": canonicalize(list)} — "axiom_count" sorts
// before "axioms" ('_' is 0x5F, before 's' at 0x73), which is why
// axiomsCommitmentDoc declares AxiomCount first.
func HashAxiomsCommitment(axioms []string) [32]byte {
	canonical := CanonicalizeAxioms(axioms)
	doc := axiomsCommitmentDoc{AxiomCount: len(canonical), Axioms: canonical}

	b, _ := canonicalJSON(doc)
	return sha256.Sum256(b)
}

// HashAxiomsCommitmentHex is the hex form of HashAxiomsCommitment.
func HashAxiomsCommitmentHex(axioms []string) string {
	h := HashAxiomsCommitment(axioms)
	return hex.EncodeToString(h[:])
}

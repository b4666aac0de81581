// Package simulated implements the hash-based demonstrative backend (spec
// §4.7). It is NOT cryptographically sound; it exists so callers have a
// dependency-light backend available by default for tests, demos, and
// educational usage.
package simulated

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ccoin/zkpcore/internal/backend"
	"github.com/ccoin/zkpcore/pkg/canon"
	"github.com/ccoin/zkpcore/pkg/proof"
	"github.com/ccoin/zkpcore/pkg/zkperr"
)

const proofSystemLabel = "Groth16 (simulated)"

func init() {
	backend.Register("simulated", func() (backend.Backend, error) {
		return &Backend{}, nil
	})
}

// Backend is the simulated, hash-based proving/verifying backend.
type Backend struct{}

// BackendID returns "simulated".
func (b *Backend) BackendID() string { return "simulated" }

// circuitHashDoc mirrors {theorem, num_axioms, axiom_hashes} with keys in
// the alphabetical order a sort_keys=True JSON encoder would emit.
type circuitHashDoc struct {
	AxiomHashes []string `json:"axiom_hashes"`
	NumAxioms   int      `json:"num_axioms"`
	Theorem     string   `json:"theorem"`
}

func circuitHash(normalizedTheorem string, normalizedAxioms []string) [32]byte {
	axiomHashes := make([]string, len(normalizedAxioms))
	for i, a := range normalizedAxioms {
		h := sha256.Sum256([]byte(a))
		axiomHashes[i] = hex.EncodeToString(h[:])
	}
	doc := circuitHashDoc{
		AxiomHashes: axiomHashes,
		NumAxioms:   len(normalizedAxioms),
		Theorem:     normalizedTheorem,
	}
	b, _ := json.Marshal(doc)
	return sha256.Sum256(b)
}

func witnessHash(normalizedAxioms []string) [32]byte {
	b, _ := json.Marshal(normalizedAxioms)
	return sha256.Sum256(b)
}

// GenerateProof implements the simulated proving algorithm.
func (b *Backend) GenerateProof(theorem string, privateAxioms []string, metadata map[string]interface{}) (*proof.Proof, error) {
	if theorem == "" {
		return nil, zkperr.New(zkperr.KindInvalidInput, "theorem", "must not be empty")
	}
	if len(privateAxioms) == 0 {
		return nil, zkperr.New(zkperr.KindInvalidInput, "axioms", "must not be empty")
	}

	normalizedTheorem := canon.Normalize(theorem)
	normalizedAxioms := make([]string, len(privateAxioms))
	for i, a := range privateAxioms {
		normalizedAxioms[i] = canon.Normalize(a)
	}

	cHash := circuitHash(normalizedTheorem, normalizedAxioms)
	wHash := witnessHash(normalizedAxioms)

	combined := make([]byte, 0, 64+len(normalizedTheorem))
	combined = append(combined, cHash[:]...)
	combined = append(combined, wHash[:]...)
	combined = append(combined, []byte(normalizedTheorem)...)
	digest := sha256.Sum256(combined)

	randomTail := make([]byte, 128)
	if _, err := rand.Read(randomTail); err != nil {
		return nil, zkperr.Wrap(zkperr.KindInvalidInput, "entropy", err)
	}

	proofData := make([]byte, 0, 160)
	proofData = append(proofData, digest[:]...)
	proofData = append(proofData, randomTail...)
	proofData = proofData[:160]

	publicInputs := map[string]interface{}{
		"theorem":      theorem,
		"theorem_hash": hex.EncodeToString(func() []byte { h := sha256.Sum256([]byte(normalizedTheorem)); return h[:] }()),
	}

	outMetadata := map[string]interface{}{}
	for k, v := range metadata {
		outMetadata[k] = v
	}
	outMetadata["proof_system"] = proofSystemLabel
	outMetadata["num_axioms"] = len(privateAxioms)

	return proof.New(proofData, publicInputs, outMetadata, proof.NowSeconds()), nil
}

// VerifyProof implements the simulated verification checks.
func (b *Backend) VerifyProof(p *proof.Proof) (bool, error) {
	if p == nil {
		return false, nil
	}

	theoremVal, ok := p.PublicInputs["theorem"]
	if !ok {
		return false, nil
	}
	theorem, ok := theoremVal.(string)
	if !ok {
		return false, nil
	}

	theoremHashVal, ok := p.PublicInputs["theorem_hash"]
	if !ok {
		return false, nil
	}
	theoremHash, ok := theoremHashVal.(string)
	if !ok {
		return false, nil
	}

	normalizedHash := canon.HashTheoremHex(theorem)
	legacyHash := sha256.Sum256([]byte(theorem))
	if theoremHash != normalizedHash && theoremHash != hex.EncodeToString(legacyHash[:]) {
		return false, nil
	}

	if p.SizeBytes < 100 || p.SizeBytes > 300 {
		return false, nil
	}

	if p.Metadata == nil {
		return false, nil
	}
	if _, ok := p.Metadata["proof_system"]; !ok {
		return false, nil
	}

	return true, nil
}

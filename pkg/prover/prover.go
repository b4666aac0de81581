// Package prover implements the higher-level Prover façade: inputs are
// canonicalized, proofs are cached under a metadata-aware key, and the
// call is dispatched to the requested backend (spec §2's "Higher-level
// prover façade").
package prover

import (
	"fmt"
	"sync"

	"github.com/ccoin/zkpcore/internal/backend"
	_ "github.com/ccoin/zkpcore/internal/backend/groth16" // registers "groth16"
	_ "github.com/ccoin/zkpcore/internal/backend/simulated" // registers "simulated"
	"github.com/ccoin/zkpcore/pkg/canon"
	"github.com/ccoin/zkpcore/pkg/proof"
)

// keyLock is a per-key mutex so a cache miss for one key never serializes
// requests for a different key (spec §5's fine-grained locking requirement).
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*sync.Mutex)}
}

func (k *keyLock) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Prover is the façade callers use to generate proofs. Safe for concurrent
// use.
type Prover struct {
	cacheMu sync.RWMutex
	cache   map[string]*proof.Proof
	locks   *keyLock
}

// New creates an empty Prover façade.
func New() *Prover {
	return &Prover{
		cache: make(map[string]*proof.Proof),
		locks: newKeyLock(),
	}
}

// cacheKey folds (canonical_theorem, axioms_commitment, backend, circuit_version,
// ruleset_id, metadata.seed) into the façade's memoization key, per the
// ordering guarantees in spec §5.
func cacheKey(canonicalTheorem, axiomsCommitmentHex, backendID string, circuitVersion uint64, rulesetID string, seed interface{}) string {
	return fmt.Sprintf("%s|%s|%s|%d|%s|%v", canonicalTheorem, axiomsCommitmentHex, backendID, circuitVersion, rulesetID, seed)
}

func metaString(metadata map[string]interface{}, key, fallback string) string {
	if v, ok := metadata[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func metaUint64(metadata map[string]interface{}, key string, fallback uint64) uint64 {
	switch v := metadata[key].(type) {
	case uint64:
		return v
	case int:
		return uint64(v)
	case float64:
		return uint64(v)
	default:
		return fallback
	}
}

// GenerateProof canonicalizes theorem/axioms, checks the proof cache, and
// on a miss dispatches to the requested backend. Cache hits re-adapt the
// cached proof's public_inputs.theorem to the caller's exact string.
func (p *Prover) GenerateProof(theorem string, axioms []string, metadata map[string]interface{}) (*proof.Proof, error) {
	backendID := metaString(metadata, "backend", "simulated")
	circuitVersion := metaUint64(metadata, "circuit_version", 1)
	rulesetID := metaString(metadata, "ruleset_id", "TDFOL_v1")

	canonicalTheorem := canon.CanonicalizeTheorem(theorem)
	canonicalAxioms := canon.CanonicalizeAxioms(axioms)
	axiomsCommitmentHex := canon.HashAxiomsCommitmentHex(canonicalAxioms)

	key := cacheKey(canonicalTheorem, axiomsCommitmentHex, backendID, circuitVersion, rulesetID, metadata["seed"])

	unlock := p.locks.lock(key)
	defer unlock()

	p.cacheMu.RLock()
	cached, hit := p.cache[key]
	p.cacheMu.RUnlock()
	if hit {
		return adaptCachedProof(cached, theorem), nil
	}

	b, err := backend.Get(backendID)
	if err != nil {
		return nil, err
	}

	generated, err := b.GenerateProof(theorem, axioms, metadata)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[key] = generated
	p.cacheMu.Unlock()

	return generated, nil
}

// adaptCachedProof returns a shallow copy of cached whose public_inputs.theorem
// reflects the caller's exact (pre-canonicalization) theorem string.
func adaptCachedProof(cached *proof.Proof, exactTheorem string) *proof.Proof {
	publicInputs := make(map[string]interface{}, len(cached.PublicInputs))
	for k, v := range cached.PublicInputs {
		publicInputs[k] = v
	}
	publicInputs["theorem"] = exactTheorem

	return &proof.Proof{
		ProofData:    cached.ProofData,
		PublicInputs: publicInputs,
		Metadata:     cached.Metadata,
		Timestamp:    cached.Timestamp,
		SizeBytes:    cached.SizeBytes,
	}
}

// ResetCache clears memoized proofs, for tests.
func (p *Prover) ResetCache() {
	p.cacheMu.Lock()
	p.cache = make(map[string]*proof.Proof)
	p.cacheMu.Unlock()
}

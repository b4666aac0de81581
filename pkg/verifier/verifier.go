// Package verifier implements the higher-level Verifier façade (spec §2,
// §7): verification always happens through the same backend that produced
// a proof, and a malformed proof is rejected rather than causing a panic
// or propagated error.
package verifier

import (
	"sync"

	"github.com/ccoin/zkpcore/internal/backend"
	_ "github.com/ccoin/zkpcore/internal/backend/groth16"
	_ "github.com/ccoin/zkpcore/internal/backend/simulated"
	"github.com/ccoin/zkpcore/pkg/proof"
)

// Verifier is the façade callers use to verify proofs. Safe for
// concurrent use.
type Verifier struct {
	mu               sync.Mutex
	rejectionCounter uint64
}

// New creates a Verifier façade.
func New() *Verifier {
	return &Verifier{}
}

// VerifyMap verifies a proof rendered as the self-describing map from
// proof.Proof.ToMap (spec §6). Any malformed or unparseable input is
// treated as a rejection, never an error.
func (v *Verifier) VerifyMap(proofMap map[string]interface{}) bool {
	p, err := proof.FromMap(proofMap)
	if err != nil {
		v.recordRejection()
		return false
	}
	return v.Verify(p)
}

// Verify verifies a proof using the backend that must have produced it
// (spec §7: "verification always happens through the same backend used to
// generate the proof").
func (v *Verifier) Verify(p *proof.Proof) bool {
	if p == nil {
		v.recordRejection()
		return false
	}

	backendID, _ := p.Metadata["backend"].(string)
	if backendID == "" {
		backendID, _ = p.Metadata["backend_id"].(string)
	}
	if backendID == "" {
		backendID = "simulated"
	}

	b, err := backend.Get(backendID)
	if err != nil {
		v.recordRejection()
		return false
	}

	ok, err := b.VerifyProof(p)
	if err != nil || !ok {
		v.recordRejection()
		return false
	}
	return true
}

// RejectionCount returns the number of proofs this façade has rejected,
// per spec §7's observability requirement.
func (v *Verifier) RejectionCount() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rejectionCounter
}

func (v *Verifier) recordRejection() {
	v.mu.Lock()
	v.rejectionCounter++
	v.mu.Unlock()
}

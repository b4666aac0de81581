// Package proof defines the self-describing Proof record produced by every
// backend (spec §3).
package proof

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// Proof is immutable once returned by a backend.
type Proof struct {
	ProofData    []byte
	PublicInputs map[string]interface{}
	Metadata     map[string]interface{}
	Timestamp    float64 // seconds
	SizeBytes    int
}

// New builds a Proof, stamping SizeBytes and Timestamp from proofData's len
// and the given unixSeconds (callers supply the clock so this stays pure).
func New(proofData []byte, publicInputs, metadata map[string]interface{}, unixSeconds float64) *Proof {
	return &Proof{
		ProofData:    proofData,
		PublicInputs: publicInputs,
		Metadata:     metadata,
		Timestamp:    unixSeconds,
		SizeBytes:    len(proofData),
	}
}

// NowSeconds returns the current time as float seconds, for callers that
// need a timestamp at proof-construction time.
func NowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

// ToMap renders the proof as the self-describing map defined in spec §6:
// { proof_data: hex, public_inputs, metadata, timestamp, size_bytes }.
func (p *Proof) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"proof_data":    hex.EncodeToString(p.ProofData),
		"public_inputs": p.PublicInputs,
		"metadata":      p.Metadata,
		"timestamp":     p.Timestamp,
		"size_bytes":    p.SizeBytes,
	}
}

// FromMap reconstructs a Proof from ToMap's output.
func FromMap(m map[string]interface{}) (*Proof, error) {
	hexStr, ok := m["proof_data"].(string)
	if !ok {
		return nil, zkperr.New(zkperr.KindMalformedProof, "proof_data", "missing or not a string")
	}
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, zkperr.Wrap(zkperr.KindMalformedProof, "proof_data", err)
	}

	publicInputs, _ := m["public_inputs"].(map[string]interface{})
	metadata, _ := m["metadata"].(map[string]interface{})

	var sizeBytes int
	switch v := m["size_bytes"].(type) {
	case int:
		sizeBytes = v
	case float64:
		sizeBytes = int(v)
	default:
		sizeBytes = len(data)
	}

	var timestamp float64
	switch v := m["timestamp"].(type) {
	case float64:
		timestamp = v
	case int:
		timestamp = float64(v)
	}

	return &Proof{
		ProofData:    data,
		PublicInputs: publicInputs,
		Metadata:     metadata,
		Timestamp:    timestamp,
		SizeBytes:    sizeBytes,
	}, nil
}

// String renders a short human summary, useful for CLI output.
func (p *Proof) String() string {
	return fmt.Sprintf("Proof{size=%dB inputs=%v}", p.SizeBytes, p.PublicInputs)
}

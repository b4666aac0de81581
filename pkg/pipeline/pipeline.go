// Package pipeline orchestrates the off-chain-to-on-chain flow: generate a
// proof, pack its public inputs for EVM, run an RPC precheck, and
// optionally submit and await confirmation (spec §4.10).
package pipeline

import (
	"strconv"

	"github.com/ccoin/zkpcore/pkg/evmpack"
	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// Prover is the minimal capability the pipeline needs from a proving
// backend: generate a proof from a pre-built witness JSON blob, returned
// as a self-describing map (spec §3/§6).
type Prover interface {
	GenerateProof(witnessJSON []byte) (map[string]interface{}, error)
}

// Client is the injected on-chain capability. Sync or async is the
// implementation's choice — this package has no hidden state and never
// interprets receipt contents.
type Client interface {
	VerifyProofRPCCall(proofHex string, publicInputsHex [4]string) (bool, error)
	SubmitProofTransaction(proofHex string, publicInputsHex [4]string, from, privateKey string, gasPrice *uint64) (txHash string, err error)
	WaitForConfirmation(txHash string, timeoutSeconds int) (receipt map[string]interface{}, err error)
}

// Signer bundles submission credentials.
type Signer struct {
	From       string
	PrivateKey string
}

// Options controls the pipeline's flags.
type Options struct {
	DryRun                     bool
	GasPrice                   *uint64
	ConfirmationTimeoutSeconds int
}

// DefaultConfirmationTimeoutSeconds is the spec's default bound.
const DefaultConfirmationTimeoutSeconds = 300

// Result is the pipeline's outcome.
type Result struct {
	PrecheckOK bool
	Submitted  bool
	TxHash     string
	Receipt    map[string]interface{}
}

// Run executes the flow described in spec §4.10.
func Run(witnessJSON []byte, prover Prover, client Client, signer Signer, opts Options) (Result, error) {
	proofMap, err := prover.GenerateProof(witnessJSON)
	if err != nil {
		return Result{}, err
	}

	proofHex, publicInputs, err := extractProof(proofMap)
	if err != nil {
		return Result{}, err
	}

	theoremHash, _ := publicInputs["theorem_hash"].(string)
	axiomsCommitment, _ := publicInputs["axioms_commitment"].(string)
	circuitVersion, err := asUint64(publicInputs["circuit_version"])
	if err != nil {
		return Result{}, zkperr.New(zkperr.KindMalformedProof, "circuit_version", "not a valid integer")
	}
	rulesetID, _ := publicInputs["ruleset_id"].(string)

	packed, err := evmpack.Pack(theoremHash, axiomsCommitment, circuitVersion, rulesetID)
	if err != nil {
		return Result{}, zkperr.Wrap(zkperr.KindMalformedProof, "public_inputs", err)
	}
	packedHex := [4]string{packed.TheoremHashFr, packed.AxiomsCommitmentFr, packed.CircuitVersionFr, packed.RulesetIDFr}

	precheckOK, err := client.VerifyProofRPCCall(proofHex, packedHex)
	if err != nil {
		return Result{}, err
	}

	if !precheckOK || opts.DryRun {
		return Result{PrecheckOK: precheckOK, Submitted: false}, nil
	}

	txHash, err := client.SubmitProofTransaction(proofHex, packedHex, signer.From, signer.PrivateKey, opts.GasPrice)
	if err != nil {
		return Result{}, err
	}

	timeout := opts.ConfirmationTimeoutSeconds
	if timeout == 0 {
		timeout = DefaultConfirmationTimeoutSeconds
	}
	receipt, err := client.WaitForConfirmation(txHash, timeout)
	if err != nil {
		return Result{}, err
	}

	return Result{PrecheckOK: true, Submitted: true, TxHash: txHash, Receipt: receipt}, nil
}

func extractProof(proofMap map[string]interface{}) (proofHex string, publicInputs map[string]interface{}, err error) {
	proofHex, ok := proofMap["proof_data"].(string)
	if !ok || proofHex == "" {
		return "", nil, zkperr.New(zkperr.KindMalformedProof, "proof_data", "missing or empty")
	}

	publicInputs, ok = proofMap["public_inputs"].(map[string]interface{})
	if !ok {
		return "", nil, zkperr.New(zkperr.KindMalformedProof, "public_inputs", "missing")
	}
	for _, key := range []string{"theorem_hash", "axioms_commitment", "circuit_version", "ruleset_id"} {
		if _, ok := publicInputs[key]; !ok {
			return "", nil, zkperr.New(zkperr.KindMalformedProof, key, "missing from public_inputs")
		}
	}

	return proofHex, publicInputs, nil
}

func asUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int:
		return uint64(n), nil
	case float64:
		return uint64(n), nil
	case string:
		return strconv.ParseUint(n, 10, 64)
	default:
		return 0, zkperr.New(zkperr.KindMalformedProof, "circuit_version", "unsupported type")
	}
}

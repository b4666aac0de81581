package pipeline

import (
	"testing"
)

type mockProver struct {
	response map[string]interface{}
	err      error
}

func (m *mockProver) GenerateProof(witnessJSON []byte) (map[string]interface{}, error) {
	return m.response, m.err
}

type mockClient struct {
	precheckOK    bool
	precheckErr   error
	submitCalled  bool
	confirmCalled bool
	txHash        string
	receipt       map[string]interface{}
}

func (c *mockClient) VerifyProofRPCCall(proofHex string, publicInputsHex [4]string) (bool, error) {
	return c.precheckOK, c.precheckErr
}
func (c *mockClient) SubmitProofTransaction(proofHex string, publicInputsHex [4]string, from, privateKey string, gasPrice *uint64) (string, error) {
	c.submitCalled = true
	return c.txHash, nil
}
func (c *mockClient) WaitForConfirmation(txHash string, timeoutSeconds int) (map[string]interface{}, error) {
	c.confirmCalled = true
	return c.receipt, nil
}

func wellFormedProofMap() map[string]interface{} {
	return map[string]interface{}{
		"proof_data": "deadbeef",
		"public_inputs": map[string]interface{}{
			"theorem_hash":      "4ae81572f06e1b88fd5ced7a1a000945432e83e1551e6f721ee9c00b8cc33260",
			"axioms_commitment": "6c30b34f8fa89e3d91a9d296f6015203ca2b0fa5338db443abd6e957bfacef38",
			"circuit_version":   uint64(1),
			"ruleset_id":        "TDFOL_v1",
		},
	}
}

func TestRunDryRunNeverSubmits(t *testing.T) {
	prover := &mockProver{response: wellFormedProofMap()}
	client := &mockClient{precheckOK: true}

	result, err := Run(nil, prover, client, Signer{}, Options{DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.PrecheckOK || result.Submitted {
		t.Fatalf("result = %+v, want precheck_ok=true submitted=false", result)
	}
	if client.submitCalled || client.confirmCalled {
		t.Fatal("dry_run must never call submit or confirm")
	}
}

func TestRunFailedPrecheckNeverSubmits(t *testing.T) {
	prover := &mockProver{response: wellFormedProofMap()}
	client := &mockClient{precheckOK: false}

	result, err := Run(nil, prover, client, Signer{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.PrecheckOK || result.Submitted {
		t.Fatalf("result = %+v, want precheck_ok=false submitted=false", result)
	}
	if client.submitCalled {
		t.Fatal("a failed precheck must never submit")
	}
}

func TestRunSubmitsAndConfirmsOnSuccess(t *testing.T) {
	prover := &mockProver{response: wellFormedProofMap()}
	client := &mockClient{precheckOK: true, txHash: "0xabc", receipt: map[string]interface{}{"status": "1"}}

	result, err := Run(nil, prover, client, Signer{From: "0xme"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Submitted || result.TxHash != "0xabc" {
		t.Fatalf("result = %+v", result)
	}
	if !client.submitCalled || !client.confirmCalled {
		t.Fatal("expected both submit and confirm to be called")
	}
}

func TestRunMalformedProofFailsClosed(t *testing.T) {
	prover := &mockProver{response: map[string]interface{}{"proof_data": ""}}
	client := &mockClient{precheckOK: true}

	if _, err := Run(nil, prover, client, Signer{}, Options{}); err == nil {
		t.Fatal("expected an error for a proof missing public_inputs")
	}
}

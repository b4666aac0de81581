package pipeline

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// verifierABI is the minimal Solidity interface the on-chain verifier
// contract exposes: a view call that checks a proof, and a state-changing
// call that records it. Both take the same (proof, publicInputs) shape.
const verifierABI = `[
	{"name":"verifyProof","type":"function","stateMutability":"view",
	 "inputs":[{"name":"proof","type":"bytes"},{"name":"publicInputs","type":"uint256[4]"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"name":"submitProof","type":"function","stateMutability":"nonpayable",
	 "inputs":[{"name":"proof","type":"bytes"},{"name":"publicInputs","type":"uint256[4]"}],
	 "outputs":[]}
]`

// RPCClient is a Client backed by a real Ethereum JSON-RPC endpoint. It
// implements the precheck as an eth_call against the verifier contract and
// submission as a signed transaction, satisfying the pipeline's injected
// Client interface (spec §4.10).
type RPCClient struct {
	eth      *ethclient.Client
	contract common.Address
	chainID  *big.Int
	abi      abi.ABI
}

// NewRPCClient dials rpcURL and targets the verifier contract at
// contractAddr on the given chain.
func NewRPCClient(ctx context.Context, rpcURL string, contractAddr common.Address, chainID *big.Int) (*RPCClient, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(verifierABI))
	if err != nil {
		return nil, fmt.Errorf("parse verifier abi: %w", err)
	}
	return &RPCClient{eth: eth, contract: contractAddr, chainID: chainID, abi: parsed}, nil
}

func packPublicInputs(publicInputsHex [4]string) ([4]*big.Int, error) {
	var words [4]*big.Int
	for i, h := range publicInputsHex {
		n, ok := new(big.Int).SetString(strings.TrimPrefix(h, "0x"), 16)
		if !ok {
			return words, fmt.Errorf("public input %d is not valid hex: %q", i, h)
		}
		words[i] = n
	}
	return words, nil
}

// VerifyProofRPCCall runs the precheck as a read-only eth_call, mirroring
// what the real transaction would do without spending gas.
func (c *RPCClient) VerifyProofRPCCall(proofHex string, publicInputsHex [4]string) (bool, error) {
	proofBytes, err := hex.DecodeString(strings.TrimPrefix(proofHex, "0x"))
	if err != nil {
		return false, fmt.Errorf("decode proof_data: %w", err)
	}
	words, err := packPublicInputs(publicInputsHex)
	if err != nil {
		return false, err
	}

	data, err := c.abi.Pack("verifyProof", proofBytes, words)
	if err != nil {
		return false, fmt.Errorf("pack verifyProof call: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: data}, nil)
	if err != nil {
		return false, fmt.Errorf("eth_call verifyProof: %w", err)
	}

	results, err := c.abi.Unpack("verifyProof", out)
	if err != nil || len(results) != 1 {
		return false, fmt.Errorf("unpack verifyProof result: %w", err)
	}
	ok, _ := results[0].(bool)
	return ok, nil
}

// SubmitProofTransaction signs and broadcasts a submitProof transaction
// from the supplied private key, returning the transaction hash.
func (c *RPCClient) SubmitProofTransaction(proofHex string, publicInputsHex [4]string, from, privateKeyHex string, gasPrice *uint64) (string, error) {
	proofBytes, err := hex.DecodeString(strings.TrimPrefix(proofHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("decode proof_data: %w", err)
	}
	words, err := packPublicInputs(publicInputsHex)
	if err != nil {
		return "", err
	}
	data, err := c.abi.Pack("submitProof", proofBytes, words)
	if err != nil {
		return "", fmt.Errorf("pack submitProof call: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fromAddr := common.HexToAddress(from)
	nonce, err := c.eth.PendingNonceAt(ctx, fromAddr)
	if err != nil {
		return "", fmt.Errorf("fetch nonce: %w", err)
	}

	gp := new(big.Int)
	if gasPrice != nil {
		gp.SetUint64(*gasPrice)
	} else if gp, err = c.eth.SuggestGasPrice(ctx); err != nil {
		return "", fmt.Errorf("suggest gas price: %w", err)
	}

	gasLimit, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{From: fromAddr, To: &c.contract, Data: data})
	if err != nil {
		return "", fmt.Errorf("estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.contract,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gp,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}

	return signed.Hash().Hex(), nil
}

// WaitForConfirmation polls for the transaction receipt until it appears
// or timeoutSeconds elapses, returning the receipt as a self-describing map.
func (c *RPCClient) WaitForConfirmation(txHash string, timeoutSeconds int) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	hash := common.HexToHash(txHash)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, hash)
		if err == nil {
			return map[string]interface{}{
				"tx_hash":      receipt.TxHash.Hex(),
				"block_number": receipt.BlockNumber.Uint64(),
				"status":       receipt.Status,
				"gas_used":     receipt.GasUsed,
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for confirmation of %s: %w", txHash, ctx.Err())
		case <-ticker.C:
		}
	}
}

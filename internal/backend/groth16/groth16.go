// Package groth16 implements the Groth16 backend: a thin adapter that
// shells out to an external native prover binary over a strict JSON wire
// format (spec §4.8). Only this package in the ZKP core links any
// zkSNARK-adjacent tooling, and even then only via an external process —
// no SNARK library is imported in-process, per spec §9's dependency-light
// core mandate.
package groth16

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/ccoin/zkpcore/internal/backend"
	"github.com/ccoin/zkpcore/internal/circuit"
	"github.com/ccoin/zkpcore/pkg/canon"
	"github.com/ccoin/zkpcore/pkg/proof"
	"github.com/ccoin/zkpcore/pkg/tdfol"
	"github.com/ccoin/zkpcore/pkg/zkperr"
)

const (
	enableEnvVar     = "IPFS_DATASETS_ENABLE_GROTH16"
	deterministicEnv = "GROTH16_BACKEND_DETERMINISTIC"
	defaultTimeout   = 30 * time.Second
)

func init() {
	backend.Register("groth16", func() (backend.Backend, error) {
		return &Backend{Timeout: defaultTimeout}, nil
	})
}

// Backend is the Groth16 FFI adapter.
type Backend struct {
	Timeout time.Duration

	mu            sync.Mutex
	setupInFlight map[uint64]bool
}

// BackendID returns "groth16".
func (b *Backend) BackendID() string { return "groth16" }

// enabled reports whether IPFS_DATASETS_ENABLE_GROTH16 is truthy.
func enabled() bool {
	switch os.Getenv(enableEnvVar) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	default:
		return false
	}
}

func (b *Backend) requireEnabled() error {
	if !enabled() {
		return zkperr.New(zkperr.KindBackendDisabled, enableEnvVar, "Groth16 backend requires "+enableEnvVar+" to be set")
	}
	return nil
}

// seedFromMetadata validates and extracts metadata["seed"], if present.
func seedFromMetadata(metadata map[string]interface{}) (*uint64, error) {
	raw, ok := metadata["seed"]
	if !ok || raw == nil {
		return nil, nil
	}

	var seed int64
	switch v := raw.(type) {
	case int:
		seed = int64(v)
	case int64:
		seed = v
	case float64:
		if v != float64(int64(v)) {
			return nil, zkperr.New(zkperr.KindInvalidInput, "seed", "must be an integer")
		}
		seed = int64(v)
	default:
		return nil, zkperr.New(zkperr.KindInvalidInput, "seed", "must be a non-negative integer")
	}

	if seed < 0 {
		return nil, zkperr.New(zkperr.KindInvalidInput, "seed", "must be non-negative")
	}
	u := uint64(seed)
	return &u, nil
}

// commitmentForVersion implements the circuit-version policy at the
// adapter boundary (spec §4.8): v1 uses the standard axioms commitment
// with no intermediate steps; v2+ under TDFOL_v1 requires a derived
// trace, folding the version into the preimage, and refuses to call the
// binary with NotDerivable if no trace exists.
func commitmentForVersion(canonicalAxioms []string, theorem string, circuitVersion uint64, rulesetID string, intermediateSteps []string) (commitmentHex string, steps []string, err error) {
	if circuitVersion <= 1 {
		return canon.HashAxiomsCommitmentHex(canonicalAxioms), []string{}, nil
	}

	if rulesetID != circuit.RulesetTDFOLv1 {
		return canon.HashAxiomsCommitmentHex(canonicalAxioms), intermediateSteps, nil
	}

	steps = intermediateSteps
	if steps == nil {
		_, trace, derr := tdfol.Derive(canonicalAxioms, theorem)
		if derr != nil {
			return "", nil, derr
		}
		steps = trace
	}

	holds, err := tdfol.EvaluateHolds(canonicalAxioms, theorem)
	if err != nil {
		return "", nil, err
	}
	if !holds || len(steps) == 0 {
		return "", nil, zkperr.New(zkperr.KindNotDerivable, "theorem", "no TDFOL_v1 derivation trace for "+theorem)
	}

	// v2-specific commitment: SHA-256 over (v1 commitment || version byte),
	// the preimage scheme pinned in DESIGN.md resolving spec.md's open
	// question about the exact v2 byte layout.
	v1 := canon.HashAxiomsCommitment(canonicalAxioms)
	preimage := append(append([]byte{}, v1[:]...), byte(circuitVersion))
	v2 := sha256.Sum256(preimage)
	return hex.EncodeToString(v2[:]), steps, nil
}

// GenerateProof validates the witness, invokes the `prove` subcommand, and
// wraps the resulting proof JSON.
func (b *Backend) GenerateProof(theorem string, privateAxioms []string, metadata map[string]interface{}) (*proof.Proof, error) {
	if err := b.requireEnabled(); err != nil {
		return nil, err
	}
	if theorem == "" {
		return nil, zkperr.New(zkperr.KindInvalidInput, "theorem", "must not be empty")
	}
	if len(privateAxioms) == 0 {
		return nil, zkperr.New(zkperr.KindInvalidInput, "axioms", "must not be empty")
	}

	binaryPath, err := resolveBinaryPath()
	if err != nil {
		return nil, err
	}

	seed, err := seedFromMetadata(metadata)
	if err != nil {
		return nil, err
	}

	circuitVersion := uint64(1)
	if v, ok := metadata["circuit_version"]; ok {
		circuitVersion = toUint64(v)
	}
	rulesetID := circuit.RulesetTDFOLv1
	if v, ok := metadata["ruleset_id"].(string); ok && v != "" {
		rulesetID = v
	}

	canonicalAxioms := canon.CanonicalizeAxioms(privateAxioms)
	commitmentHex, steps, err := commitmentForVersion(canonicalAxioms, theorem, circuitVersion, rulesetID, nil)
	if err != nil {
		return nil, err
	}

	var securityLevel *int
	if v, ok := metadata["security_level"]; ok {
		sl := int(toUint64(v))
		securityLevel = &sl
	}

	wire := witnessWire{
		PrivateAxioms:       canonicalAxioms,
		Theorem:             theorem,
		AxiomsCommitmentHex: commitmentHex,
		TheoremHashHex:      canon.HashTheoremHex(theorem),
		CircuitVersion:      circuitVersion,
		RulesetID:           rulesetID,
		SecurityLevel:       securityLevel,
		IntermediateSteps:   steps,
	}

	stdin, err := json.Marshal(wire)
	if err != nil {
		return nil, zkperr.Wrap(zkperr.KindWireFormatError, "witness", err)
	}

	args := []string{"prove", "--input", "-", "--output", "-"}
	if seed != nil {
		args = append(args, "--seed", strconv.FormatUint(*seed, 10))
	}

	stdout, _, err := b.run(binaryPath, args, stdin)
	if err != nil {
		return nil, err
	}

	var pw proofWire
	if err := json.Unmarshal(stdout, &pw); err != nil {
		return nil, zkperr.Wrap(zkperr.KindWireFormatError, "proof", err)
	}
	if len(pw.PublicInputs) != 4 {
		return nil, zkperr.New(zkperr.KindWireFormatError, "public_inputs", "expected 4 entries [theorem_hash, axioms_commitment, circuit_version, ruleset_id]")
	}

	theoremHash, err := publicInputString(pw.PublicInputs[0])
	if err != nil {
		return nil, zkperr.Wrap(zkperr.KindWireFormatError, "public_inputs[0]", err)
	}
	axiomsCommitment, err := publicInputString(pw.PublicInputs[1])
	if err != nil {
		return nil, zkperr.Wrap(zkperr.KindWireFormatError, "public_inputs[1]", err)
	}
	circuitVersionOut, err := publicInputString(pw.PublicInputs[2])
	if err != nil {
		return nil, zkperr.Wrap(zkperr.KindWireFormatError, "public_inputs[2]", err)
	}
	rulesetIDOut, err := publicInputString(pw.PublicInputs[3])
	if err != nil {
		return nil, zkperr.Wrap(zkperr.KindWireFormatError, "public_inputs[3]", err)
	}

	publicInputs := map[string]interface{}{
		"theorem":           theorem,
		"theorem_hash":      theoremHash,
		"axioms_commitment": axiomsCommitment,
		"circuit_version":   circuitVersionOut,
		"ruleset_id":        rulesetIDOut,
	}

	version := ""
	if pw.Version != nil {
		version = *pw.Version
	}
	outMetadata := map[string]interface{}{
		"backend":        "groth16",
		"curve":          "BN254",
		"version":        version,
		"security_level": securityLevel,
	}

	timestamp := proof.NowSeconds()
	if pw.Timestamp != nil {
		timestamp = *pw.Timestamp
	}

	return proof.New(stdout, publicInputs, outMetadata, timestamp), nil
}

// VerifyProof invokes the `verify` subcommand over the proof's wire bytes.
func (b *Backend) VerifyProof(p *proof.Proof) (bool, error) {
	if err := b.requireEnabled(); err != nil {
		return false, err
	}
	if p == nil || len(p.ProofData) == 0 {
		return false, nil
	}

	binaryPath, err := resolveBinaryPath()
	if err != nil {
		return false, err
	}

	_, exitCode, err := b.runExpectExit(binaryPath, []string{"verify", "--proof", "-"}, p.ProofData)
	if err != nil {
		return false, err
	}

	switch exitCode {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, zkperr.New(zkperr.KindWireFormatError, "exit_code", "unexpected exit code")
	}
}

// SetupReport is ensure_setup's return value.
type SetupReport struct {
	Status  string
	Version uint64
}

// EnsureSetup checks for on-disk proving_key.bin/verifying_key.bin under
// the binary's artifact directory for version; if present, returns
// {status: "already_exists"} without invoking the binary. Otherwise it
// invokes `setup --version <n>` and returns the binary's report. Setup never
// runs concurrently for the same version within a process: a call made
// while setup for that version is already in flight fails with
// InvalidInput instead of waiting.
func (b *Backend) EnsureSetup(version uint64, seed *uint64) (*SetupReport, error) {
	if err := b.requireEnabled(); err != nil {
		return nil, err
	}

	binaryPath, err := resolveBinaryPath()
	if err != nil {
		return nil, err
	}

	dir := artifactDir(binaryPath, version)
	pk := dir + "/proving_key.bin"
	vk := dir + "/verifying_key.bin"
	if fileExists(pk) && fileExists(vk) {
		return &SetupReport{Status: "already_exists", Version: version}, nil
	}

	b.mu.Lock()
	if b.setupInFlight == nil {
		b.setupInFlight = map[uint64]bool{}
	}
	if b.setupInFlight[version] {
		b.mu.Unlock()
		return nil, zkperr.New(zkperr.KindInvalidInput, "version", "setup already running for this version")
	}
	b.setupInFlight[version] = true
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		delete(b.setupInFlight, version)
		b.mu.Unlock()
	}()

	args := []string{"setup", "--version", strconv.FormatUint(version, 10)}
	if seed != nil {
		args = append(args, "--seed", strconv.FormatUint(*seed, 10))
	}

	stdout, _, err := b.run(binaryPath, args, nil)
	if err != nil {
		return nil, err
	}

	var report setupReportWire
	if err := json.Unmarshal(stdout, &report); err != nil {
		return nil, zkperr.Wrap(zkperr.KindWireFormatError, "setup", err)
	}
	return &SetupReport{Status: report.Status, Version: report.Version}, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func toUint64(v interface{}) uint64 {
	switch n := v.(type) {
	case uint64:
		return n
	case int:
		return uint64(n)
	case int64:
		return uint64(n)
	case float64:
		return uint64(n)
	default:
		return 0
	}
}

// run invokes binaryPath with args, feeding stdin and requiring exit code 0.
// Any other exit code is translated per spec §4.8's error-envelope policy.
func (b *Backend) run(binaryPath string, args []string, stdin []byte) (stdout, stderr []byte, err error) {
	stdout, stderr, exitCode, err := b.exec(binaryPath, args, stdin)
	if err != nil {
		return nil, nil, err
	}
	if exitCode == 0 {
		return stdout, stderr, nil
	}
	return nil, nil, coerceExitError(stdout, stderr)
}

// runExpectExit is like run but returns the raw exit code to the caller
// instead of treating non-zero as fatal (used by VerifyProof, where 0/1
// are both well-formed outcomes and only 2 is an error).
func (b *Backend) runExpectExit(binaryPath string, args []string, stdin []byte) (stdout []byte, exitCode int, err error) {
	stdout, stderr, code, err := b.exec(binaryPath, args, stdin)
	if err != nil {
		return nil, 0, err
	}
	if code == 2 {
		return nil, 2, coerceExitError(stdout, stderr)
	}
	return stdout, code, nil
}

func (b *Backend) exec(binaryPath string, args []string, stdin []byte) (stdout, stderr []byte, exitCode int, err error) {
	timeout := b.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	if os.Getenv(deterministicEnv) != "" {
		cmd.Env = append(os.Environ(), deterministicEnv+"="+os.Getenv(deterministicEnv))
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, nil, 0, zkperr.New(zkperr.KindTimeout, "binary", "groth16-prover exceeded its timeout")
	}

	if runErr == nil {
		return outBuf.Bytes(), errBuf.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return outBuf.Bytes(), errBuf.Bytes(), exitErr.ExitCode(), nil
	}

	return nil, nil, 0, zkperr.Wrap(zkperr.KindBinaryNotAvailable, "binary", runErr)
}


// zkpctl - Command-line interface for the ZKP core
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ccoin/zkpcore/pkg/prover"
	"github.com/ccoin/zkpcore/pkg/verifier"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("zkpctl v%s\n", version)

	case "help":
		printUsage()

	case "prove":
		cmdProve(os.Args[2:])

	case "verify":
		cmdVerify(os.Args[2:])

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("zkpctl - Command-line interface for the ZKP core")
	fmt.Println()
	fmt.Println("Usage: zkpctl <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  version   Show version information")
	fmt.Println("  help      Show this help message")
	fmt.Println("  prove     Generate a proof for a theorem against a set of axioms")
	fmt.Println("  verify    Verify a proof JSON document read from stdin or a file")
}

func cmdProve(args []string) {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	theorem := fs.String("theorem", "", "theorem to prove (required)")
	axiomsCSV := fs.String("axioms", "", "comma-separated private axioms (required)")
	backendID := fs.String("backend", "simulated", "backend id (simulated, groth16)")
	circuitVersion := fs.Uint64("circuit-version", 1, "circuit version")
	rulesetID := fs.String("ruleset", "TDFOL_v1", "ruleset id")
	fs.Parse(args)

	if *theorem == "" || *axiomsCSV == "" {
		fmt.Fprintln(os.Stderr, "Usage: zkpctl prove --theorem <string> --axioms <csv> [--backend simulated|groth16] [--circuit-version N] [--ruleset TDFOL_v1]")
		os.Exit(1)
	}

	axioms := splitCSV(*axiomsCSV)
	metadata := map[string]interface{}{
		"backend":         *backendID,
		"circuit_version": *circuitVersion,
		"ruleset_id":      *rulesetID,
	}

	p := prover.New()
	result, err := p.GenerateProof(*theorem, axioms, metadata)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result.ToMap(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	file := fs.String("file", "", "path to a proof JSON document (default: stdin)")
	fs.Parse(args)

	var data []byte
	var err error
	if *file != "" {
		data, err = os.ReadFile(*file)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var proofMap map[string]interface{}
	if err := json.Unmarshal(data, &proofMap); err != nil {
		fmt.Fprintf(os.Stderr, "Error: malformed proof JSON: %v\n", err)
		os.Exit(1)
	}

	v := verifier.New()
	if v.VerifyMap(proofMap) {
		fmt.Println("VALID")
		return
	}
	fmt.Println("INVALID")
	os.Exit(1)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

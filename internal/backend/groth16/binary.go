package groth16

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// canonicalBinaryPaths lists the repo-layout locations searched after the
// override environment variables and before a bare PATH lookup.
var canonicalBinaryPaths = []string{
	"bin/groth16-prover",
	"build/groth16-prover",
	filepath.Join("native", "groth16-prover", "target", "release", "groth16-prover"),
}

// resolveBinaryPath implements the discovery order from spec §4.8/§6: an
// explicit override env var first, then a configurable list of canonical
// repo-relative paths, then PATH.
func resolveBinaryPath() (string, error) {
	for _, envVar := range []string{"IPFS_DATASETS_GROTH16_BINARY", "GROTH16_BINARY"} {
		if path := os.Getenv(envVar); path != "" {
			return path, nil
		}
	}

	for _, candidate := range canonicalBinaryPaths {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath("groth16-prover"); err == nil {
		return path, nil
	}

	return "", zkperr.New(zkperr.KindBinaryNotAvailable, "binary", "no groth16-prover binary resolvable")
}

// artifactDir returns "<binary_dir>/artifacts/v<version>".
func artifactDir(binaryPath string, version uint64) string {
	dir := filepath.Dir(binaryPath)
	return filepath.Join(dir, "artifacts", versionDirName(version))
}

func versionDirName(version uint64) string {
	return "v" + strconv.FormatUint(version, 10)
}

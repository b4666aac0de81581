// Package backend defines the proving/verifying backend protocol and a
// lazily-loaded registry over it (spec §4.6). Importing this package must
// not pull in any heavy cryptographic dependency — backends are
// constructed only on first request.
package backend

import (
	"sync"

	"github.com/ccoin/zkpcore/pkg/proof"
	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// Backend is the capability every proving/verifying implementation exposes.
type Backend interface {
	BackendID() string
	GenerateProof(theorem string, privateAxioms []string, metadata map[string]interface{}) (*proof.Proof, error)
	VerifyProof(p *proof.Proof) (bool, error)
}

// Factory lazily constructs a Backend instance.
type Factory func() (Backend, error)

var (
	mu        sync.Mutex
	factories = map[string]Factory{}
	instances = map[string]Backend{}
	aliases   = map[string]string{
		"":          "simulated",
		"sim":       "simulated",
		"simulated": "simulated",
	}
)

// Register installs a factory under backendID. Called from each backend
// package's init(), so importing backend alone never loads gnark or spawns
// a subprocess — only the factory closure is registered.
func Register(backendID string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[backendID] = factory
}

// resolve maps an alias to its canonical backend id.
func resolve(backendID string) string {
	if canonical, ok := aliases[backendID]; ok {
		return canonical
	}
	return backendID
}

// Get returns the cached instance for backendID, constructing it via its
// factory on first request. Returns UnknownBackend if no factory is
// registered.
func Get(backendID string) (Backend, error) {
	canonical := resolve(backendID)

	mu.Lock()
	defer mu.Unlock()

	if inst, ok := instances[canonical]; ok {
		return inst, nil
	}

	factory, ok := factories[canonical]
	if !ok {
		return nil, zkperr.New(zkperr.KindUnknownBackend, "backend_id", backendID)
	}

	inst, err := factory()
	if err != nil {
		return nil, err
	}
	instances[canonical] = inst
	return inst, nil
}

// ResetRegistry clears cached instances (not factories) so tests can force
// reconstruction. It does not unregister any backend.
func ResetRegistry() {
	mu.Lock()
	defer mu.Unlock()
	instances = map[string]Backend{}
}

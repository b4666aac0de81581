package backend

import (
	"testing"

	"github.com/ccoin/zkpcore/pkg/proof"
	"github.com/ccoin/zkpcore/pkg/zkperr"
)

type stubBackend struct{ id string }

func (s *stubBackend) BackendID() string { return s.id }
func (s *stubBackend) GenerateProof(theorem string, axioms []string, metadata map[string]interface{}) (*proof.Proof, error) {
	return proof.New([]byte("x"), nil, nil, 0), nil
}
func (s *stubBackend) VerifyProof(p *proof.Proof) (bool, error) { return true, nil }

func TestGetUnknownBackend(t *testing.T) {
	ResetRegistry()
	if _, err := Get("nonexistent"); !zkperr.Is(err, zkperr.KindUnknownBackend) {
		t.Fatalf("Get(nonexistent) = %v, want UnknownBackend", err)
	}
}

func TestGetReturnsSameCachedInstance(t *testing.T) {
	ResetRegistry()
	calls := 0
	Register("stub", func() (Backend, error) {
		calls++
		return &stubBackend{id: "stub"}, nil
	})

	first, err := Get("stub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Get("stub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatal("expected Get to return the same cached instance")
	}
	if calls != 1 {
		t.Fatalf("factory invoked %d times, want 1", calls)
	}
}

func TestAliasesResolveToSimulated(t *testing.T) {
	ResetRegistry()
	Register("simulated", func() (Backend, error) { return &stubBackend{id: "simulated"}, nil })

	for _, alias := range []string{"", "sim", "simulated"} {
		b, err := Get(alias)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", alias, err)
		}
		if b.BackendID() != "simulated" {
			t.Fatalf("Get(%q).BackendID() = %q, want simulated", alias, b.BackendID())
		}
	}
}

func TestResetRegistryForcesReconstruction(t *testing.T) {
	ResetRegistry()
	calls := 0
	Register("stub2", func() (Backend, error) {
		calls++
		return &stubBackend{id: "stub2"}, nil
	})

	if _, err := Get("stub2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ResetRegistry()
	if _, err := Get("stub2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("factory invoked %d times after reset, want 2", calls)
	}
}

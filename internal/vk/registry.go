// Package vk implements the verifying-key registry: a (circuit_id,
// version) -> vk_hash map with canonical JSON hashing (spec §3, §6).
package vk

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"sync"

	"github.com/ccoin/zkpcore/pkg/zkperr"
)

// Registry is a shared mutable map, written rarely and read often. The
// duplicate-registration policy is "same hash is idempotent, different
// hash requires explicit Overwrite" (spec §5(b)).
type Registry struct {
	mu      sync.RWMutex
	entries map[string]map[uint64]string // circuitID -> version -> vkHashHex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]map[uint64]string)}
}

// Register inserts (circuitID, version) -> vkHashHex. Registering the same
// hash again is a no-op; registering a different hash without Overwrite
// fails.
func (r *Registry) Register(circuitID string, version uint64, vkHashHex string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byVersion, ok := r.entries[circuitID]
	if !ok {
		byVersion = make(map[uint64]string)
		r.entries[circuitID] = byVersion
	}

	existing, exists := byVersion[version]
	if exists && existing != vkHashHex {
		return zkperr.New(zkperr.KindInvalidInput, "vk_hash", "circuit "+circuitID+" version already registered with a different vk_hash; use Overwrite")
	}

	byVersion[version] = vkHashHex
	return nil
}

// Overwrite unconditionally replaces the entry.
func (r *Registry) Overwrite(circuitID string, version uint64, vkHashHex string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byVersion, ok := r.entries[circuitID]
	if !ok {
		byVersion = make(map[uint64]string)
		r.entries[circuitID] = byVersion
	}
	byVersion[version] = vkHashHex
}

// Lookup returns the vk_hash for (circuitID, version), if registered.
func (r *Registry) Lookup(circuitID string, version uint64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byVersion, ok := r.entries[circuitID]
	if !ok {
		return "", false
	}
	hash, ok := byVersion[version]
	return hash, ok
}

// ToJSON renders the registry per spec §6:
// {"vk_registry": {"<circuit_id>": {"<version>": "<hex64>"}}}.
func (r *Registry) ToJSON() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]map[string]string, len(r.entries))
	for circuitID, byVersion := range r.entries {
		versions := make(map[string]string, len(byVersion))
		for v, hash := range byVersion {
			versions[strconv.FormatUint(v, 10)] = hash
		}
		out[circuitID] = versions
	}

	return json.Marshal(map[string]interface{}{"vk_registry": out})
}

// FromJSON replaces the registry's contents from spec §6's serialization.
func (r *Registry) FromJSON(data []byte) error {
	var doc struct {
		VKRegistry map[string]map[string]string `json:"vk_registry"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return zkperr.Wrap(zkperr.KindWireFormatError, "vk_registry", err)
	}

	entries := make(map[string]map[uint64]string, len(doc.VKRegistry))
	for circuitID, versions := range doc.VKRegistry {
		byVersion := make(map[uint64]string, len(versions))
		for verStr, hash := range versions {
			v, err := strconv.ParseUint(verStr, 10, 64)
			if err != nil {
				return zkperr.New(zkperr.KindWireFormatError, "version", "non-decimal version key: "+verStr)
			}
			byVersion[v] = hash
		}
		entries[circuitID] = byVersion
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

// HashVerifyingKey computes the canonical-JSON-then-SHA-256 hash of a
// verifying key document, sorting map keys recursively so the hash is
// stable regardless of field insertion order.
func HashVerifyingKey(vk map[string]interface{}) string {
	b, _ := json.Marshal(canonicalizeValue(vk))
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// canonicalizeValue recursively copies nested maps and slices. Key order in
// the hashed JSON comes from json.Marshal, which sorts map[string]any keys
// at every nesting level; slice element order is kept as given.
func canonicalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]interface{}, len(val))
		for _, k := range keys {
			out[k] = canonicalizeValue(val[k])
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = canonicalizeValue(item)
		}
		return out
	default:
		return val
	}
}

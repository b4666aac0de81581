package statement

import "testing"

func TestParseCircuitRefRoundTrip(t *testing.T) {
	cases := []struct {
		id      string
		version uint64
	}{
		{"knowledge_of_axioms", 1},
		{"tdfol_derivation", 42},
	}
	for _, c := range cases {
		ref := FormatCircuitRef(c.id, c.version)
		id, version, err := ParseCircuitRef(ref)
		if err != nil {
			t.Fatalf("ParseCircuitRef(%q) error: %v", ref, err)
		}
		if id != c.id || version != c.version {
			t.Fatalf("ParseCircuitRef(%q) = (%q,%d), want (%q,%d)", ref, id, version, c.id, c.version)
		}
	}
}

func TestParseCircuitRefRejectsMalformed(t *testing.T) {
	cases := []string{"noversion", "id@v", "@v1", "id@vabc", "bad@id@v1"}
	for _, c := range cases {
		if _, _, err := ParseCircuitRef(c); err == nil {
			t.Errorf("ParseCircuitRef(%q) expected an error", c)
		}
	}
}

func TestParseCircuitRefLenientDefaultsToV1(t *testing.T) {
	id, version, err := ParseCircuitRefLenient("knowledge_of_axioms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "knowledge_of_axioms" || version != 1 {
		t.Fatalf("got (%q,%d), want (knowledge_of_axioms,1)", id, version)
	}

	if _, _, err := ParseCircuitRefLenient("bad@id@v1"); err == nil {
		t.Error("expected lenient parser to still reject illegal characters")
	}
}

func TestToFieldElementsDoesNotError(t *testing.T) {
	s := Statement{
		TheoremHash:      "4ae81572f06e1b88fd5ced7a1a000945432e83e1551e6f721ee9c00b8cc33260",
		AxiomsCommitment: "6c30b34f8fa89e3d91a9d296f6015203ca2b0fa5338db443abd6e957bfacef38",
		CircuitVersion:   1,
		RulesetID:        "TDFOL_v1",
	}
	fe, err := s.ToFieldElements()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fe) != 4 {
		t.Fatalf("expected 4 field elements, got %d", len(fe))
	}
}

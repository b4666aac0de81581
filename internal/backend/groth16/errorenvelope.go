package groth16

import (
	"bytes"
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ccoin/zkpcore/pkg/zkperr"
)

//go:embed schema/error_envelope_v1.json
var errorEnvelopeSchemaJSON []byte

var errorEnvelopeSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(errorEnvelopeSchemaJSON))
	if err != nil {
		panic("groth16: invalid embedded error envelope schema: " + err.Error())
	}
	const resourceURL = "https://ccoin.example/zkpcore/groth16/error-envelope-v1.json"
	if err := compiler.AddResource(resourceURL, doc); err != nil {
		panic("groth16: failed to register error envelope schema: " + err.Error())
	}
	errorEnvelopeSchema = compiler.MustCompile(resourceURL)
}

// errorEnvelope mirrors ErrorEnvelopeV1: {error: {schema_version, code, message}}.
type errorEnvelope struct {
	Error struct {
		SchemaVersion int    `json:"schema_version"`
		Code          string `json:"code"`
		Message       string `json:"message"`
	} `json:"error"`
}

// parseErrorEnvelope validates raw against the bundled JSON schema and, if
// valid, returns the structured error it describes. Returns false if raw is
// not a schema-valid error envelope.
func parseErrorEnvelope(raw []byte) (*zkperr.Error, bool) {
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, false
	}
	if err := errorEnvelopeSchema.Validate(generic); err != nil {
		return nil, false
	}

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	return zkperr.Structured(env.Error.Code, env.Error.Message), true
}

// coerceExitError builds the best available error for an exit-code-2
// failure: stdout parsed as ErrorEnvelopeV1 first, then stderr, then the
// raw coerced text of whichever stream is non-empty.
func coerceExitError(stdout, stderr []byte) error {
	if e, ok := parseErrorEnvelope(stdout); ok {
		return e
	}
	if e, ok := parseErrorEnvelope(stderr); ok {
		return e
	}
	text := string(stdout)
	if text == "" {
		text = string(stderr)
	}
	return zkperr.New(zkperr.KindWireFormatError, "binary_output", text)
}

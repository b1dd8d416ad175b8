package rpcwire

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// CodeInvalidParams is reported when request params fail schema validation.
// The framing and parsing core never produces it; only ParamsValidator does.
const CodeInvalidParams = -32602

// ParamsValidator checks message params against per-method JSON Schemas.
// Methods without a registered schema always pass.
type ParamsValidator struct {
	schemas map[string]*gojsonschema.Schema
	log     Logger
}

// NewParamsValidator creates an empty validator.
func NewParamsValidator(opts ...Option) *ParamsValidator {
	o := newOptions(opts...)
	return &ParamsValidator{
		schemas: make(map[string]*gojsonschema.Schema),
		log:     o.logger,
	}
}

// Register compiles schema and attaches it to method, replacing any earlier
// registration.
func (v *ParamsValidator) Register(method string, schema json.RawMessage) error {
	loader := gojsonschema.NewStringLoader(string(schema))
	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return fmt.Errorf("invalid schema for %q: %v", method, err)
	}
	v.schemas[method] = compiled
	return nil
}

// Validate checks params against the schema registered for method. Absent
// params are validated as an empty object.
func (v *ParamsValidator) Validate(method string, params json.RawMessage) *Error {
	schema, ok := v.schemas[method]
	if !ok {
		return nil
	}
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}

	documentLoader := gojsonschema.NewStringLoader(string(params))
	result, err := schema.Validate(documentLoader)
	if err != nil {
		return errInvalidRequest("validate params: "+err.Error(), textData(params))
	}
	if result.Valid() {
		return nil
	}

	var errMsgs []string
	for _, desc := range result.Errors() {
		errMsgs = append(errMsgs, desc.String())
	}
	v.log.WithFields(map[string]interface{}{"method": method}).Debug("params failed schema validation")
	return &Error{
		Code:    CodeInvalidParams,
		Message: fmt.Sprintf("invalid params: %s", strings.Join(errMsgs, "; ")),
		Data:    nullToAbsent(params),
	}
}

// ValidateRequest checks req.Params against the schema for req.Method.
func (v *ParamsValidator) ValidateRequest(req Request) *Error {
	return v.Validate(req.Method, req.Params)
}

// ValidateNotification checks n.Params against the schema for n.Method.
func (v *ParamsValidator) ValidateNotification(n Notification) *Error {
	return v.Validate(n.Method, n.Params)
}

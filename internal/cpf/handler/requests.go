package handler

import (
	"bytes"
	"encoding/json"

	dErrors "credito/pkg/domain-errors"
)

// maxInputLength bounds a single raw CPF field before cleaning.
const maxInputLength = 64

// Input is a raw CPF as sent by the form layer. JSON strings are taken
// verbatim, JSON numbers by their literal text and anything else
// (null, booleans, objects, arrays) becomes empty input.
//
// Numbers lose leading zeros on the client side, so 01234567890 sent as a
// number arrives with 10 digits and fails the length rule.
type Input string

func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*in = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Input(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*in = Input(n.String())
	default:
		*in = ""
	}
	return nil
}

func validateInput(in Input) error {
	if len(in) > maxInputLength {
		return dErrors.New(dErrors.CodeValidation, "cpf must be at most 64 characters")
	}
	return nil
}

// ValidateRequest is the body of POST /cpf/validate and POST /cpf/check.
type ValidateRequest struct {
	CPF Input `json:"cpf"`
}

// Validate implements httputil.Validatable.
func (r *ValidateRequest) Validate() error {
	return validateInput(r.CPF)
}

// BatchRequest is the body of POST /cpf/validate/batch.
type BatchRequest struct {
	CPFs []Input `json:"cpfs"`
}

// Validate implements httputil.Validatable. Batch size limits are enforced
// by the service.
func (r *BatchRequest) Validate() error {
	if len(r.CPFs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "cpfs is required")
	}
	for _, in := range r.CPFs {
		if err := validateInput(in); err != nil {
			return err
		}
	}
	return nil
}

// Raw returns the inputs as plain strings.
func (r *BatchRequest) Raw() []string {
	out := make([]string, len(r.CPFs))
	for i, in := range r.CPFs {
		out[i] = string(in)
	}
	return out
}

// FormatRequest is the body of POST /cpf/format. Partial defaults to true,
// the live-typing mode.
type FormatRequest struct {
	CPF     Input `json:"cpf"`
	Partial *bool `json:"partial,omitempty"`
}

// Validate implements httputil.Validatable.
func (r *FormatRequest) Validate() error {
	return validateInput(r.CPF)
}

// IsPartial resolves the partial flag default.
func (r *FormatRequest) IsPartial() bool {
	return r.Partial == nil || *r.Partial
}

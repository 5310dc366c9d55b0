package handler

import (
	"credito/pkg/cpf"
)

// ReasonResponse is one failed rule.
type ReasonResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidateResponse is the HTTP response for POST /cpf/validate.
type ValidateResponse struct {
	Digits    string           `json:"digits"`
	Formatted string           `json:"formatted"`
	Valid     bool             `json:"valid"`
	Reasons   []ReasonResponse `json:"reasons"`
}

// CheckResponse is the HTTP response for POST /cpf/check. Formatted holds
// the canonical mask when the CPF is valid.
type CheckResponse struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
}

// BatchResponse is the HTTP response for POST /cpf/validate/batch.
type BatchResponse struct {
	Results []ValidateResponse `json:"results"`
}

// FormatResponse is the HTTP response for POST /cpf/format.
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Stage     string `json:"stage"`
}

// GeneratedCPF is one fixture.
type GeneratedCPF struct {
	Digits    string `json:"digits"`
	Formatted string `json:"formatted"`
}

// GenerateResponse is the HTTP response for GET /cpf/generate.
type GenerateResponse struct {
	CPFs []GeneratedCPF `json:"cpfs"`
}

// FromResult converts a validation result to its HTTP form.
func FromResult(res cpf.Result) ValidateResponse {
	out := ValidateResponse{
		Digits:    res.Digits,
		Formatted: res.Formatted,
		Valid:     res.Valid,
		Reasons:   []ReasonResponse{},
	}
	messages := res.Messages()
	for i, reason := range res.Reasons {
		out.Reasons = append(out.Reasons, ReasonResponse{Code: string(reason), Message: messages[i]})
	}
	return out
}

// FromResults converts batch results.
func FromResults(results []cpf.Result) BatchResponse {
	out := BatchResponse{Results: make([]ValidateResponse, 0, len(results))}
	for _, res := range results {
		out.Results = append(out.Results, FromResult(res))
	}
	return out
}

// FromGenerated converts fixtures.
func FromGenerated(cpfs []cpf.CPF) GenerateResponse {
	out := GenerateResponse{CPFs: make([]GeneratedCPF, 0, len(cpfs))}
	for _, c := range cpfs {
		out.CPFs = append(out.CPFs, GeneratedCPF{Digits: c.String(), Formatted: c.Formatted()})
	}
	return out
}

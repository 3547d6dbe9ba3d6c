package domain

import "encoding/json"

// VerificationResult is the outcome of checking a transaction on chain.
// Transaction and Receipt keep the node response untouched.
type VerificationResult struct {
	Valid       bool            `json:"valid"`
	Transaction json.RawMessage `json:"transaction,omitempty"`
	Receipt     json.RawMessage `json:"receipt,omitempty"`
	Method      string          `json:"method,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// NewInvalidVerification returns a failed verification with the given reason
func NewInvalidVerification(reason string) *VerificationResult {
	return &VerificationResult{Valid: false, Error: reason}
}

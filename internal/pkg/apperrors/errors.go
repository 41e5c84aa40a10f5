// Package apperrors defines the error taxonomy shared by services and the
// HTTP error middleware. Each failure is scoped to the operation that
// produced it; nothing here is treated as fatal to the process.
package apperrors

import "fmt"

// ValidationError marks missing or malformed caller input. It is resolved
// before any upstream call is made and is safe to echo back to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AuthenticationError marks a rejected credential or a missing bearer token.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func NewAuthentication(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// UnverifiedEmailError is the needs-verification outcome of a sign-in or
// sign-up attempt. It carries the identity the verification email should
// address so the resend affordance can be offered.
type UnverifiedEmailError struct {
	Email       string
	DisplayName string
}

func (e *UnverifiedEmailError) Error() string {
	return "Email is not verified."
}

// UpstreamError wraps a completion or mail gateway failure. The client only
// ever sees Message; Cause stays in the server logs.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

func NewUpstream(message string, cause error) *UpstreamError {
	return &UpstreamError{Message: message, Cause: cause}
}

// ConfigurationError marks required environment configuration that is absent
// at request time, e.g. an incomplete SMTP block.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing %s configuration", e.Missing)
}

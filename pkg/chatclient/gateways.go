// Package chatclient implements the client-side chat session controller: a
// state machine over {session, pending verification, transcript, busy
// flags} mediating between UI events and the identity, completion and mail
// gateways.
package chatclient

import "context"

// Session is the client-held proof of a successfully authenticated,
// verified user. At most one Session is live at a time.
type Session struct {
	Email string
	// Token returns the current bearer token. Kept as a function so gateway
	// implementations with refreshing tokens stay pluggable.
	Token func(ctx context.Context) (string, error)
}

// PendingVerification records a sign-in/sign-up attempt blocked on email
// verification.
type PendingVerification struct {
	Email       string
	DisplayName string
}

// AuthStatus enumerates the three-way outcome of an authentication attempt.
type AuthStatus int

const (
	AuthAuthenticated AuthStatus = iota
	AuthNeedsVerification
	AuthFailed
)

// AuthResult is the tagged outcome of an identity gateway call:
// authenticated (Session set), needs-verification (Email/DisplayName set),
// or failed (Message set).
type AuthResult struct {
	Status      AuthStatus
	Session     *Session
	Email       string
	DisplayName string
	Message     string
}

func Authenticated(session *Session) AuthResult {
	return AuthResult{Status: AuthAuthenticated, Session: session}
}

func NeedsVerification(email, displayName string) AuthResult {
	return AuthResult{Status: AuthNeedsVerification, Email: email, DisplayName: displayName}
}

func AuthFailure(message string) AuthResult {
	return AuthResult{Status: AuthFailed, Message: message}
}

// Subscription is the explicit handle for a session-state observer.
type Subscription interface {
	Unsubscribe()
}

// IdentityGateway is the black-box authentication capability. Sign-up never
// yields an authenticated result: the provider requires email verification
// before first use.
type IdentityGateway interface {
	SignIn(ctx context.Context, email, password string) AuthResult
	SignUp(ctx context.Context, email, password, displayName string) AuthResult
	SignInWithProvider(ctx context.Context) AuthResult
	SignOut(ctx context.Context) error
	// ObserveSession invokes onChange with the current session (nil when
	// signed out) every time authentication state changes.
	ObserveSession(onChange func(*Session)) (Subscription, error)
}

// CompletionGateway turns a prompt into generated text on behalf of an
// authenticated session.
type CompletionGateway interface {
	Complete(ctx context.Context, prompt string, session *Session) (string, error)
}

// MailGateway delivers verification and test emails through the backend
// proxy.
type MailGateway interface {
	SendVerificationLink(ctx context.Context, email, displayName string) error
	SendTestMail(ctx context.Context, email, displayName string) error
}

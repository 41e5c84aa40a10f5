package chatclient

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const starterGreeting = "Hi! Ask me anything. Please sign in first to send a message."

// Controller is the single source of truth for the chat session UI state:
// session, pending verification, transcript, busy flags and status text.
// Operations mirror discrete UI events; while an operation's busy flag is
// set, a duplicate invocation is a silent no-op.
type Controller struct {
	identity   IdentityGateway
	completion CompletionGateway
	mail       MailGateway

	mu         sync.Mutex
	transcript *Transcript
	session    *Session
	pending    *PendingVerification

	authOpen      bool
	authBusy      bool
	chatBusy      bool
	verifySending bool
	mailTestBusy  bool

	authError      string
	verifyStatus   string
	mailTestStatus string

	sub Subscription
}

func NewController(identity IdentityGateway, completion CompletionGateway, mail MailGateway) (*Controller, error) {
	c := &Controller{
		identity:   identity,
		completion: completion,
		mail:       mail,
		transcript: NewTranscript(),
	}
	c.transcript.Append(RoleAssistant, starterGreeting)

	sub, err := identity.ObserveSession(func(session *Session) {
		c.mu.Lock()
		c.session = session
		c.mu.Unlock()
	})
	if err != nil {
		return nil, fmt.Errorf("observe session state: %w", err)
	}
	c.sub = sub

	return c, nil
}

// Close tears down the session-state subscription.
func (c *Controller) Close() {
	if c.sub != nil {
		c.sub.Unsubscribe()
	}
}

// SignIn authenticates with email and password. Validation failures are
// resolved locally: no gateway call is made and the error text is surfaced
// through AuthError.
func (c *Controller) SignIn(ctx context.Context, email, password string) {
	email = strings.TrimSpace(email)

	c.mu.Lock()
	if c.authBusy {
		c.mu.Unlock()
		return
	}
	if email == "" || strings.TrimSpace(password) == "" {
		c.authError = "Email and password are required."
		c.mu.Unlock()
		return
	}
	c.authBusy = true
	c.authError = ""
	c.verifyStatus = ""
	c.mu.Unlock()

	result := c.identity.SignIn(ctx, email, password)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.authBusy = false

	switch result.Status {
	case AuthAuthenticated:
		c.session = result.Session
		c.pending = nil
		c.authOpen = false
	case AuthNeedsVerification:
		c.pending = &PendingVerification{Email: result.Email, DisplayName: result.DisplayName}
		c.authError = "Email is not verified. Send a verification link and verify before login."
	case AuthFailed:
		c.authError = result.Message
	}
}

// SignUp creates an account. The identity provider always demands email
// verification before first use, so a created account is recorded as
// PendingVerification and never installs a Session directly.
func (c *Controller) SignUp(ctx context.Context, email, password, displayName string) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)

	c.mu.Lock()
	if c.authBusy {
		c.mu.Unlock()
		return
	}
	if email == "" || strings.TrimSpace(password) == "" || displayName == "" {
		c.authError = "Email, password and display name are required."
		c.mu.Unlock()
		return
	}
	c.authBusy = true
	c.authError = ""
	c.verifyStatus = ""
	c.mu.Unlock()

	result := c.identity.SignUp(ctx, email, password, displayName)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.authBusy = false

	switch result.Status {
	case AuthNeedsVerification, AuthAuthenticated:
		pendingEmail := result.Email
		if pendingEmail == "" {
			pendingEmail = email
		}
		pendingName := result.DisplayName
		if pendingName == "" {
			pendingName = displayName
		}
		c.pending = &PendingVerification{Email: pendingEmail, DisplayName: pendingName}
		c.authError = "Account created. Verify your email before signing in."
	case AuthFailed:
		c.authError = result.Message
	}
}

// SignInWithProvider runs the federated sign-in flow.
func (c *Controller) SignInWithProvider(ctx context.Context) {
	c.mu.Lock()
	if c.authBusy {
		c.mu.Unlock()
		return
	}
	c.authBusy = true
	c.authError = ""
	c.verifyStatus = ""
	c.mu.Unlock()

	result := c.identity.SignInWithProvider(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.authBusy = false

	switch result.Status {
	case AuthAuthenticated:
		c.session = result.Session
		c.pending = nil
		c.authOpen = false
	case AuthNeedsVerification:
		c.pending = &PendingVerification{Email: result.Email, DisplayName: result.DisplayName}
		c.authError = "Email is not verified. Send a verification link and verify before login."
	case AuthFailed:
		c.authError = result.Message
	}
}

// SendVerificationLink emails a verification link to the pending identity.
// A no-op when nothing is pending.
func (c *Controller) SendVerificationLink(ctx context.Context) {
	c.mu.Lock()
	if c.pending == nil || c.verifySending {
		c.mu.Unlock()
		return
	}
	pending := *c.pending
	c.verifySending = true
	c.verifyStatus = ""
	c.mu.Unlock()

	name := pending.DisplayName
	if name == "" {
		if local, _, found := strings.Cut(pending.Email, "@"); found {
			name = local
		}
	}

	err := c.mail.SendVerificationLink(ctx, pending.Email, name)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifySending = false
	if err != nil {
		c.verifyStatus = err.Error()
		return
	}
	c.verifyStatus = fmt.Sprintf("Verification link sent to %s.", pending.Email)
}

// SubmitPrompt appends the user message optimistically and asks the
// completion gateway. Exactly one assistant message is appended per call
// that passes the preconditions, for both the success and the failure path.
func (c *Controller) SubmitPrompt(ctx context.Context, text string) {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.chatBusy {
		c.mu.Unlock()
		return
	}
	if c.session == nil {
		c.authOpen = true
		c.mu.Unlock()
		return
	}
	session := c.session
	c.chatBusy = true
	c.mu.Unlock()

	c.transcript.Append(RoleUser, text)

	reply, err := c.completion.Complete(ctx, text, session)
	if err != nil {
		c.transcript.Append(RoleAssistant, fmt.Sprintf("Error: %s", err.Error()))
	} else {
		c.transcript.Append(RoleAssistant, reply)
	}

	c.mu.Lock()
	c.chatBusy = false
	c.mu.Unlock()
}

// SignOut clears the session immediately; the gateway call is
// fire-and-forget.
func (c *Controller) SignOut(ctx context.Context) {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()

	go func() {
		_ = c.identity.SignOut(ctx)
	}()
}

// SendTestMail sends a test email to the signed-in address. Without a
// session it opens the auth dialog instead.
func (c *Controller) SendTestMail(ctx context.Context) {
	c.mu.Lock()
	if c.mailTestBusy {
		c.mu.Unlock()
		return
	}
	if c.session == nil {
		c.authOpen = true
		c.mailTestStatus = "Sign in first to send a test email."
		c.mu.Unlock()
		return
	}
	email := c.session.Email
	c.mailTestBusy = true
	c.mailTestStatus = ""
	c.mu.Unlock()

	err := c.mail.SendTestMail(ctx, email, "")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mailTestBusy = false
	if err != nil {
		c.mailTestStatus = err.Error()
		return
	}
	c.mailTestStatus = fmt.Sprintf("Test email sent to %s.", email)
}

func (c *Controller) OpenAuthDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authOpen = true
}

// CloseAuthDialog dismisses the dialog and drops the transient auth state.
// An in-flight request is not aborted.
func (c *Controller) CloseAuthDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authOpen = false
	c.authError = ""
	c.verifyStatus = ""
	c.pending = nil
}

// StatusLabel mirrors the header line of the UI.
func (c *Controller) StatusLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chatBusy {
		return "Assistant is thinking..."
	}
	if c.session != nil {
		return fmt.Sprintf("Signed in as %s", c.session.Email)
	}
	return "Signed out"
}

func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Controller) PendingVerification() *PendingVerification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	pending := *c.pending
	return &pending
}

func (c *Controller) Messages() []Message {
	return c.transcript.Messages()
}

func (c *Controller) AuthDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authOpen
}

func (c *Controller) AuthError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authError
}

func (c *Controller) VerifyStatus() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verifyStatus
}

func (c *Controller) MailTestStatus() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mailTestStatus
}

func (c *Controller) ChatBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chatBusy
}

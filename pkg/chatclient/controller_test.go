package chatclient

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscription struct{}

func (fakeSubscription) Unsubscribe() {}

type fakeIdentity struct {
	signInResult   AuthResult
	signUpResult   AuthResult
	providerResult AuthResult

	signInCalls   int
	signUpCalls   int
	providerCalls int
	signOutCalls  chan struct{}

	// When set, SignIn signals started and parks until release closes.
	started chan struct{}
	release chan struct{}
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{signOutCalls: make(chan struct{}, 1)}
}

func (f *fakeIdentity) SignIn(ctx context.Context, email, password string) AuthResult {
	f.signInCalls++
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	return f.signInResult
}

func (f *fakeIdentity) SignUp(ctx context.Context, email, password, displayName string) AuthResult {
	f.signUpCalls++
	return f.signUpResult
}

func (f *fakeIdentity) SignInWithProvider(ctx context.Context) AuthResult {
	f.providerCalls++
	return f.providerResult
}

func (f *fakeIdentity) SignOut(ctx context.Context) error {
	select {
	case f.signOutCalls <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeIdentity) ObserveSession(onChange func(*Session)) (Subscription, error) {
	return fakeSubscription{}, nil
}

type fakeCompletion struct {
	reply string
	err   error
	calls int

	started chan struct{}
	release chan struct{}
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt string, session *Session) (string, error) {
	f.calls++
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	return f.reply, f.err
}

type fakeMail struct {
	verificationCalls int
	testCalls         int
	lastEmail         string
	lastDisplayName   string
	err               error

	started chan struct{}
	release chan struct{}
}

func (f *fakeMail) park() {
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
}

func (f *fakeMail) SendVerificationLink(ctx context.Context, email, displayName string) error {
	f.verificationCalls++
	f.lastEmail = email
	f.lastDisplayName = displayName
	f.park()
	return f.err
}

func (f *fakeMail) SendTestMail(ctx context.Context, email, displayName string) error {
	f.testCalls++
	f.lastEmail = email
	f.lastDisplayName = displayName
	f.park()
	return f.err
}

// blocking wires the started/release pair used to hold a fake gateway call
// in flight while the test pokes at the controller.
func blocking() (started chan struct{}, release chan struct{}) {
	return make(chan struct{}), make(chan struct{})
}

func sessionFor(email string) *Session {
	return &Session{
		Email: email,
		Token: func(context.Context) (string, error) { return "token-" + email, nil },
	}
}

func newTestController(t *testing.T, identity *fakeIdentity, completion *fakeCompletion, mail *fakeMail) *Controller {
	t.Helper()
	c, err := NewController(identity, completion, mail)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestControllerStartsWithGreeting(t *testing.T) {
	c := newTestController(t, newFakeIdentity(), &fakeCompletion{}, &fakeMail{})

	messages := c.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, RoleAssistant, messages[0].Role)
	assert.Contains(t, messages[0].Content, "sign in first")
	assert.Nil(t, c.Session())
	assert.False(t, c.AuthDialogOpen())
}

func TestSignInValidationSkipsGateway(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"both empty", "", ""},
		{"blank email", "   ", "secret"},
		{"blank password", "a@b.com", "   "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity := newFakeIdentity()
			c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})

			c.SignIn(context.Background(), tc.email, tc.password)

			assert.Zero(t, identity.signInCalls)
			assert.Nil(t, c.Session())
			assert.Equal(t, "Email and password are required.", c.AuthError())
		})
	}
}

func TestSignInSuccessInstallsSessionAndClearsPending(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = NeedsVerification("a@b.com", "Ada")
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})
	c.OpenAuthDialog()

	// First attempt blocked on verification.
	c.SignIn(context.Background(), " a@b.com ", "secret")
	require.NotNil(t, c.PendingVerification())
	assert.Equal(t, "a@b.com", c.PendingVerification().Email)
	assert.Nil(t, c.Session())
	assert.True(t, c.AuthDialogOpen())

	// Second attempt succeeds: session installed, pending cleared, dialog
	// closed.
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	c.SignIn(context.Background(), " a@b.com ", "secret")

	require.NotNil(t, c.Session())
	assert.Equal(t, "a@b.com", c.Session().Email)
	assert.Nil(t, c.PendingVerification())
	assert.False(t, c.AuthDialogOpen())
	assert.Empty(t, c.AuthError())
}

func TestSignInFailureSurfacesGatewayMessage(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = AuthFailure("invalid credentials")
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})

	c.SignIn(context.Background(), "a@b.com", "wrong")

	assert.Nil(t, c.Session())
	assert.Equal(t, "invalid credentials", c.AuthError())
}

func TestSignUpNeverInstallsSession(t *testing.T) {
	identity := newFakeIdentity()
	identity.signUpResult = NeedsVerification("new@b.com", "Newbie")
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})

	c.SignUp(context.Background(), "new@b.com", "secret", "Newbie")

	assert.Equal(t, 1, identity.signUpCalls)
	assert.Nil(t, c.Session())
	require.NotNil(t, c.PendingVerification())
	assert.Equal(t, "new@b.com", c.PendingVerification().Email)
	assert.Equal(t, "Newbie", c.PendingVerification().DisplayName)
	assert.Equal(t, "Account created. Verify your email before signing in.", c.AuthError())
}

func TestSignUpValidationSkipsGateway(t *testing.T) {
	identity := newFakeIdentity()
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})

	c.SignUp(context.Background(), "new@b.com", "secret", "   ")

	assert.Zero(t, identity.signUpCalls)
	assert.Nil(t, c.PendingVerification())
	assert.Equal(t, "Email, password and display name are required.", c.AuthError())
}

func TestSignInWithProviderSuccess(t *testing.T) {
	identity := newFakeIdentity()
	identity.providerResult = Authenticated(sessionFor("g@b.com"))
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})
	c.OpenAuthDialog()

	c.SignInWithProvider(context.Background())

	require.NotNil(t, c.Session())
	assert.Equal(t, "g@b.com", c.Session().Email)
	assert.False(t, c.AuthDialogOpen())
}

func TestSubmitPromptWithoutSessionOpensDialog(t *testing.T) {
	completion := &fakeCompletion{}
	c := newTestController(t, newFakeIdentity(), completion, &fakeMail{})
	before := len(c.Messages())

	c.SubmitPrompt(context.Background(), "hello")

	assert.Len(t, c.Messages(), before)
	assert.True(t, c.AuthDialogOpen())
	assert.Zero(t, completion.calls)
}

func TestSubmitPromptAppendsUserThenAssistant(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	completion := &fakeCompletion{reply: "42"}
	c := newTestController(t, identity, completion, &fakeMail{})
	c.SignIn(context.Background(), "a@b.com", "secret")
	before := len(c.Messages())

	c.SubmitPrompt(context.Background(), "  what is the answer?  ")

	messages := c.Messages()
	require.Len(t, messages, before+2)
	assert.Equal(t, RoleUser, messages[before].Role)
	assert.Equal(t, "what is the answer?", messages[before].Content)
	assert.Equal(t, RoleAssistant, messages[before+1].Role)
	assert.Equal(t, "42", messages[before+1].Content)
}

func TestSubmitPromptFailureAppendsErrorMessage(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	completion := &fakeCompletion{err: errors.New("Failed to get AI response.")}
	c := newTestController(t, identity, completion, &fakeMail{})
	c.SignIn(context.Background(), "a@b.com", "secret")
	before := len(c.Messages())

	c.SubmitPrompt(context.Background(), "hello")

	messages := c.Messages()
	require.Len(t, messages, before+2)
	assert.Equal(t, RoleAssistant, messages[before+1].Role)
	assert.Equal(t, "Error: Failed to get AI response.", messages[before+1].Content)
}

func TestSubmitPromptBlankTextIsNoOp(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	completion := &fakeCompletion{reply: "42"}
	c := newTestController(t, identity, completion, &fakeMail{})
	c.SignIn(context.Background(), "a@b.com", "secret")
	before := len(c.Messages())

	c.SubmitPrompt(context.Background(), "   ")

	assert.Len(t, c.Messages(), before)
	assert.Zero(t, completion.calls)
	assert.False(t, c.AuthDialogOpen())
}

func TestSubmitPromptWhileInFlightIsNoOp(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	completion := &fakeCompletion{reply: "42"}
	completion.started, completion.release = blocking()
	c := newTestController(t, identity, completion, &fakeMail{})
	c.SignIn(context.Background(), "a@b.com", "secret")
	before := len(c.Messages())

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SubmitPrompt(context.Background(), "first")
	}()
	<-completion.started
	assert.True(t, c.ChatBusy())

	// The duplicate submission must vanish without a trace.
	c.SubmitPrompt(context.Background(), "second")

	close(completion.release)
	select {
	case <-done:
	case <-timeout(t):
		t.Fatal("in-flight SubmitPrompt never finished")
	}

	assert.False(t, c.ChatBusy())
	assert.Equal(t, 1, completion.calls)
	messages := c.Messages()
	require.Len(t, messages, before+2)
	assert.Equal(t, "first", messages[before].Content)
	assert.Equal(t, "42", messages[before+1].Content)
}

func TestSignInWhileInFlightIsNoOp(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	identity.started, identity.release = blocking()
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SignIn(context.Background(), "a@b.com", "secret")
	}()
	<-identity.started

	// All auth transitions share one flag, so both the duplicate sign-in and
	// a sign-up are rejected while the first attempt is in flight.
	c.SignIn(context.Background(), "a@b.com", "secret")
	c.SignUp(context.Background(), "new@b.com", "secret", "Newbie")

	close(identity.release)
	select {
	case <-done:
	case <-timeout(t):
		t.Fatal("in-flight SignIn never finished")
	}

	assert.Equal(t, 1, identity.signInCalls)
	assert.Zero(t, identity.signUpCalls)
	require.NotNil(t, c.Session())
	assert.Equal(t, "a@b.com", c.Session().Email)
}

func TestSendVerificationLinkWhileInFlightIsNoOp(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = NeedsVerification("ada@b.com", "Ada")
	mail := &fakeMail{}
	mail.started, mail.release = blocking()
	c := newTestController(t, identity, &fakeCompletion{}, mail)
	c.SignIn(context.Background(), "ada@b.com", "secret")

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SendVerificationLink(context.Background())
	}()
	<-mail.started

	c.SendVerificationLink(context.Background())

	close(mail.release)
	select {
	case <-done:
	case <-timeout(t):
		t.Fatal("in-flight SendVerificationLink never finished")
	}

	assert.Equal(t, 1, mail.verificationCalls)
	assert.Equal(t, "Verification link sent to ada@b.com.", c.VerifyStatus())
}

func TestSendTestMailWhileInFlightIsNoOp(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	mail := &fakeMail{}
	mail.started, mail.release = blocking()
	c := newTestController(t, identity, &fakeCompletion{}, mail)
	c.SignIn(context.Background(), "a@b.com", "secret")

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SendTestMail(context.Background())
	}()
	<-mail.started

	c.SendTestMail(context.Background())

	close(mail.release)
	select {
	case <-done:
	case <-timeout(t):
		t.Fatal("in-flight SendTestMail never finished")
	}

	assert.Equal(t, 1, mail.testCalls)
	assert.Equal(t, "Test email sent to a@b.com.", c.MailTestStatus())
}

func TestSendVerificationLinkWithoutPendingIsNoOp(t *testing.T) {
	mail := &fakeMail{}
	c := newTestController(t, newFakeIdentity(), &fakeCompletion{}, mail)

	c.SendVerificationLink(context.Background())

	assert.Zero(t, mail.verificationCalls)
	assert.Empty(t, c.VerifyStatus())
}

func TestSendVerificationLinkUsesLocalPartFallback(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = NeedsVerification("ada@b.com", "")
	mail := &fakeMail{}
	c := newTestController(t, identity, &fakeCompletion{}, mail)
	c.SignIn(context.Background(), "ada@b.com", "secret")

	c.SendVerificationLink(context.Background())

	assert.Equal(t, 1, mail.verificationCalls)
	assert.Equal(t, "ada@b.com", mail.lastEmail)
	assert.Equal(t, "ada", mail.lastDisplayName)
	assert.Equal(t, "Verification link sent to ada@b.com.", c.VerifyStatus())

	// Pending state survives a resend.
	require.NotNil(t, c.PendingVerification())
}

func TestSendVerificationLinkFailureBecomesStatus(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = NeedsVerification("ada@b.com", "Ada")
	mail := &fakeMail{err: errors.New("Failed to send verification email.")}
	c := newTestController(t, identity, &fakeCompletion{}, mail)
	c.SignIn(context.Background(), "ada@b.com", "secret")

	c.SendVerificationLink(context.Background())

	assert.Equal(t, "Failed to send verification email.", c.VerifyStatus())
}

func TestSendTestMailWithoutSessionOpensDialog(t *testing.T) {
	mail := &fakeMail{}
	c := newTestController(t, newFakeIdentity(), &fakeCompletion{}, mail)

	c.SendTestMail(context.Background())

	assert.Zero(t, mail.testCalls)
	assert.True(t, c.AuthDialogOpen())
	assert.Equal(t, "Sign in first to send a test email.", c.MailTestStatus())
}

func TestSendTestMailUsesSessionEmail(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	mail := &fakeMail{}
	c := newTestController(t, identity, &fakeCompletion{}, mail)
	c.SignIn(context.Background(), "a@b.com", "secret")

	c.SendTestMail(context.Background())

	assert.Equal(t, 1, mail.testCalls)
	assert.Equal(t, "a@b.com", mail.lastEmail)
	assert.Equal(t, "Test email sent to a@b.com.", c.MailTestStatus())
}

func TestSignOutClearsSessionImmediately(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})
	c.SignIn(context.Background(), "a@b.com", "secret")
	require.NotNil(t, c.Session())

	c.SignOut(context.Background())

	assert.Nil(t, c.Session())
	assert.Equal(t, "Signed out", c.StatusLabel())

	// Gateway call is fire-and-forget but does happen.
	select {
	case <-identity.signOutCalls:
	case <-timeout(t):
		t.Fatal("identity gateway SignOut was never called")
	}
}

func TestCloseAuthDialogDropsTransientState(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = NeedsVerification("ada@b.com", "Ada")
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})
	c.OpenAuthDialog()
	c.SignIn(context.Background(), "ada@b.com", "secret")
	require.NotNil(t, c.PendingVerification())

	c.CloseAuthDialog()

	assert.False(t, c.AuthDialogOpen())
	assert.Nil(t, c.PendingVerification())
	assert.Empty(t, c.AuthError())
	assert.Empty(t, c.VerifyStatus())
}

func TestStatusLabelTracksSession(t *testing.T) {
	identity := newFakeIdentity()
	identity.signInResult = Authenticated(sessionFor("a@b.com"))
	c := newTestController(t, identity, &fakeCompletion{}, &fakeMail{})

	assert.Equal(t, "Signed out", c.StatusLabel())

	c.SignIn(context.Background(), "a@b.com", "secret")
	assert.True(t, strings.HasPrefix(c.StatusLabel(), "Signed in as "))
}

package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient carries the shared plumbing of the gateway implementations
// that talk to the backend proxy.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// postJSON posts the payload and decodes a success body into out. On a
// non-2xx response it returns the server's error body, or fallback when the
// body is unreadable.
func (h *HTTPClient) postJSON(ctx context.Context, path string, headers map[string]string, payload, out interface{}, fallback string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody errorBody
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
			return errors.New(errBody.Error)
		}
		return errors.New(fallback)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// HTTPCompletionGateway asks the backend proxy for a completion, presenting
// the session's bearer token.
type HTTPCompletionGateway struct {
	http *HTTPClient
}

var _ CompletionGateway = &HTTPCompletionGateway{}

func NewHTTPCompletionGateway(client *HTTPClient) *HTTPCompletionGateway {
	return &HTTPCompletionGateway{http: client}
}

func (g *HTTPCompletionGateway) Complete(ctx context.Context, prompt string, session *Session) (string, error) {
	token, err := session.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve session token: %w", err)
	}

	payload := struct {
		Prompt string `json:"prompt"`
		Email  string `json:"email"`
	}{Prompt: prompt, Email: session.Email}

	var res struct {
		Reply string `json:"reply"`
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	if err := g.http.postJSON(ctx, "/api/chat", headers, payload, &res, "Something went wrong."); err != nil {
		return "", err
	}
	return res.Reply, nil
}

// HTTPMailGateway forwards verification-link and test-mail requests to the
// backend proxy.
type HTTPMailGateway struct {
	http *HTTPClient
}

var _ MailGateway = &HTTPMailGateway{}

func NewHTTPMailGateway(client *HTTPClient) *HTTPMailGateway {
	return &HTTPMailGateway{http: client}
}

type mailPayload struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

func (g *HTTPMailGateway) SendVerificationLink(ctx context.Context, email, displayName string) error {
	return g.http.postJSON(ctx, "/api/auth/send-verification-link", nil,
		mailPayload{Email: email, DisplayName: displayName}, nil,
		"Failed to send verification email.")
}

func (g *HTTPMailGateway) SendTestMail(ctx context.Context, email, displayName string) error {
	return g.http.postJSON(ctx, "/api/mail/send-test", nil,
		mailPayload{Email: email, DisplayName: displayName}, nil,
		"Failed to send test email.")
}

// DemoIdentityGateway authenticates against the backend's demo login stub.
// It stands in for the real identity provider in environments without one:
// sign-in always succeeds with a demo token, sign-up follows the provider
// contract of demanding verification first, and federated sign-in is
// unavailable.
type DemoIdentityGateway struct {
	http        *HTTPClient
	broadcaster *SessionBroadcaster
}

var _ IdentityGateway = &DemoIdentityGateway{}

func NewDemoIdentityGateway(client *HTTPClient, broadcaster *SessionBroadcaster) *DemoIdentityGateway {
	return &DemoIdentityGateway{
		http:        client,
		broadcaster: broadcaster,
	}
}

func (g *DemoIdentityGateway) SignIn(ctx context.Context, email, password string) AuthResult {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var res struct {
		User struct {
			Email string `json:"email"`
			Token string `json:"token"`
		} `json:"user"`
	}

	if err := g.http.postJSON(ctx, "/api/auth/login", nil, payload, &res, "Unable to sign in."); err != nil {
		return AuthFailure(err.Error())
	}

	token := res.User.Token
	session := &Session{
		Email: res.User.Email,
		Token: func(context.Context) (string, error) { return token, nil },
	}

	_ = g.broadcaster.Publish(ctx, session)
	return Authenticated(session)
}

func (g *DemoIdentityGateway) SignUp(ctx context.Context, email, password, displayName string) AuthResult {
	// The demo backend has no account store; mimic the provider contract of
	// requiring verification before first sign-in.
	return NeedsVerification(email, displayName)
}

func (g *DemoIdentityGateway) SignInWithProvider(ctx context.Context) AuthResult {
	return AuthFailure("Google sign-in is not available with the demo identity gateway.")
}

func (g *DemoIdentityGateway) SignOut(ctx context.Context) error {
	return g.broadcaster.Publish(ctx, nil)
}

func (g *DemoIdentityGateway) ObserveSession(onChange func(*Session)) (Subscription, error) {
	return g.broadcaster.Subscribe(onChange)
}

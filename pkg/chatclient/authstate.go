package chatclient

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const sessionTopic = "auth.session.changed"

// SessionBroadcaster is the single-producer, multi-subscriber channel for
// authentication state changes. Identity gateway implementations publish on
// it; consumers subscribe with an explicit handle instead of sharing
// ambient global state.
type SessionBroadcaster struct {
	mu      sync.RWMutex
	current *Session

	pubSub *gochannel.GoChannel
}

func NewSessionBroadcaster() *SessionBroadcaster {
	return &SessionBroadcaster{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NopLogger{},
		),
	}
}

// Publish records the new session state and notifies every subscriber. A
// nil session means signed out.
func (b *SessionBroadcaster) Publish(ctx context.Context, session *Session) error {
	b.mu.Lock()
	b.current = session
	b.mu.Unlock()

	email := ""
	if session != nil {
		email = session.Email
	}

	// The payload is informational only; subscribers read Current() so the
	// non-serializable token closure survives the trip.
	return b.pubSub.Publish(sessionTopic, message.NewMessage(watermill.NewUUID(), []byte(email)))
}

// Current returns the last published session state.
func (b *SessionBroadcaster) Current() *Session {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// Subscribe registers onChange for every future state change and returns
// the handle that tears the subscription down.
func (b *SessionBroadcaster) Subscribe(onChange func(*Session)) (Subscription, error) {
	ctx, cancel := context.WithCancel(context.Background())

	messages, err := b.pubSub.Subscribe(ctx, sessionTopic)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for msg := range messages {
			msg.Ack()
			onChange(b.Current())
		}
	}()

	return &broadcasterSubscription{cancel: cancel}, nil
}

// Close shuts the underlying pub/sub down; pending subscriptions end.
func (b *SessionBroadcaster) Close() error {
	return b.pubSub.Close()
}

type broadcasterSubscription struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (s *broadcasterSubscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

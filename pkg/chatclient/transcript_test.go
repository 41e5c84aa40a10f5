package chatclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeout returns a channel that fires after a generous test deadline.
func timeout(t *testing.T) <-chan time.Time {
	t.Helper()
	return time.After(2 * time.Second)
}

func TestTranscriptPreservesOrderAndContent(t *testing.T) {
	tr := NewTranscript()

	first := tr.Append(RoleUser, "hello")
	second := tr.Append(RoleAssistant, "hi there")

	messages := tr.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, first, messages[0])
	assert.Equal(t, second, messages[1])
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.Equal(t, "hi there", messages[1].Content)
	assert.NotEqual(t, messages[0].ID, messages[1].ID)
}

func TestTranscriptLengthGrowsByOnePerAppend(t *testing.T) {
	tr := NewTranscript()

	for i := 1; i <= 5; i++ {
		tr.Append(RoleUser, "msg")
		assert.Equal(t, i, tr.Len())
	}
}

func TestTranscriptSnapshotIsIsolated(t *testing.T) {
	tr := NewTranscript()
	tr.Append(RoleUser, "hello")

	snapshot := tr.Messages()
	snapshot[0].Content = "mutated"

	assert.Equal(t, "hello", tr.Messages()[0].Content)
}

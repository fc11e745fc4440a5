package session

import (
	"testing"

	"tourplan/app/service/conversation"
	"tourplan/app/service/prefs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	svc, err := New(nil)
	require.NoError(t, err)

	return svc
}

func TestService_CommitTurn(t *testing.T) {
	svc := newTestService(t)

	record := prefs.Record{City: "jaipur"}
	svc.CommitTurn("s1", "I want to visit Jaipur", "When would you like to go?", record)

	history := svc.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, conversation.Message{Role: conversation.RoleUser, Content: "I want to visit Jaipur"}, history[0])
	assert.Equal(t, conversation.Message{Role: conversation.RoleAssistant, Content: "When would you like to go?"}, history[1])

	assert.Equal(t, record, svc.Preferences("s1"))
}

func TestService_UnknownSessionIsEmpty(t *testing.T) {
	svc := newTestService(t)

	assert.Empty(t, svc.History("missing"))
	assert.Equal(t, prefs.Record{}, svc.Preferences("missing"))
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc := newTestService(t)

	svc.CommitTurn("a", "Jaipur please", "Noted!", prefs.Record{City: "jaipur"})
	svc.CommitTurn("b", "Udaipur please", "Noted!", prefs.Record{City: "udaipur"})

	assert.Equal(t, "jaipur", svc.Preferences("a").City)
	assert.Equal(t, "udaipur", svc.Preferences("b").City)
	assert.Len(t, svc.History("a"), 2)
}

func TestService_HistoryReturnsCopy(t *testing.T) {
	svc := newTestService(t)

	svc.CommitTurn("s1", "hello", "hi", prefs.Record{})

	history := svc.History("s1")
	history[0].Content = "mutated"

	assert.Equal(t, "hello", svc.History("s1")[0].Content)
}

func TestService_Clear(t *testing.T) {
	svc := newTestService(t)

	svc.CommitTurn("s1", "hello", "hi", prefs.Record{City: "jaipur"})
	svc.Clear("s1")

	assert.Empty(t, svc.History("s1"))
	assert.Equal(t, prefs.Record{}, svc.Preferences("s1"))
}

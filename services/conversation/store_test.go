package conversation

import (
	"fmt"
	"testing"
	"time"

	"wanderly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedStore() *Store {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	n := 0
	return NewStore(
		WithClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("msg-%d", n)
		}),
	)
}

func TestStore_AppendPreservesOrder(t *testing.T) {
	store := fixedStore()

	u := store.AppendUserMessage("Find me a cozy Italian restaurant nearby")
	a := store.AppendAssistantMessage("Here are three options", &models.MessageMetadata{
		SuggestedActions: []string{"Make a reservation"},
	}, []models.Business{{ID: "b1", Name: "Trattoria Roma"}})

	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, models.RoleAssistant, a.Role)
	assert.Equal(t, "msg-1", u.ID)
	assert.Equal(t, "msg-2", a.ID)
	assert.True(t, a.Timestamp.After(u.Timestamp))

	msgs := store.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, u, msgs[0])
	assert.Equal(t, a, msgs[1])
	assert.Len(t, msgs[1].Businesses, 1)
}

func TestStore_DefaultIDsAreUnique(t *testing.T) {
	store := NewStore()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		msg := store.AppendUserMessage("hi")
		assert.False(t, seen[msg.ID], "duplicate id %s", msg.ID)
		seen[msg.ID] = true
	}
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	store := fixedStore()
	store.AppendUserMessage("original")

	msgs := store.Messages()
	msgs[0].Content = "changed"

	last, ok := store.Last()
	require.True(t, ok)
	assert.Equal(t, "original", last.Content)
}

func TestStore_InteractionsDoNotAffectMessages(t *testing.T) {
	store := fixedStore()
	store.AppendUserMessage("hello")
	store.RecordInteraction(models.EventSuggestionClicked, map[string]any{"id": "s1"})

	assert.Equal(t, 1, store.Len())
	events := store.Interactions()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventSuggestionClicked, events[0].Type)
	assert.Equal(t, "s1", events[0].Payload["id"])
}

func TestStore_Clear(t *testing.T) {
	store := fixedStore()
	store.AppendUserMessage("hello")
	store.RecordInteraction("x", nil)

	store.Clear()

	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Interactions())
	_, ok := store.Last()
	assert.False(t, ok)
}

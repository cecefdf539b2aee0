package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(provider *fakeProvider) (*ChatService, *memoryStore) {
	store := newMemoryStore()
	svc := NewChatService(&fakeSessionRepo{store}, &fakeMessageRepo{store}, provider, nil)
	return svc, store
}

func TestSendMessage_NewSession(t *testing.T) {
	provider := &fakeProvider{reply: "Hi there"}
	svc, store := newChatFixture(provider)

	res, err := svc.SendMessage(context.Background(), SendMessageInput{UserID: "u1", Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, "Hi there", res.Reply)
	require.Len(t, store.sessions, 1)
	session := store.sessions[res.SessionID]
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "hello", session.Title)

	require.Len(t, store.messages, 2)
	assert.Equal(t, string(domain.MessageRoleUser), store.messages[0].Role)
	assert.Equal(t, "hello", store.messages[0].Content)
	assert.Equal(t, string(domain.MessageRoleAssistant), store.messages[1].Role)
	assert.Equal(t, "Hi there", store.messages[1].Content)
}

func TestSendMessage_TitleIsFirstFiftyCharacters(t *testing.T) {
	svc, store := newChatFixture(&fakeProvider{reply: "ok"})

	msg := strings.Repeat("я", 60)
	res, err := svc.SendMessage(context.Background(), SendMessageInput{UserID: "u1", Message: msg})
	require.NoError(t, err)

	title := store.sessions[res.SessionID].Title
	assert.Equal(t, 50, len([]rune(title)))
	assert.Equal(t, strings.Repeat("я", 50), title)
}

func TestSendMessage_SessionPersistsAcrossTurns(t *testing.T) {
	svc, store := newChatFixture(&fakeProvider{reply: "ok"})
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, SendMessageInput{UserID: "u1", Message: "first"})
	require.NoError(t, err)
	second, err := svc.SendMessage(ctx, SendMessageInput{UserID: "u1", SessionID: first.SessionID, Message: "second"})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, store.sessions, 1)
	assert.Len(t, store.messages, 4)
	assert.Equal(t, "first", store.sessions[first.SessionID].Title)
}

func TestSendMessage_UnknownSession(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, store := newChatFixture(provider)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{UserID: "u1", SessionID: uuid.New(), Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, disol_errors.KindValidation, disol_errors.KindOf(err))
	assert.Empty(t, store.messages)
	assert.Empty(t, provider.calls)
}

func TestSendMessage_MissingFields(t *testing.T) {
	svc, store := newChatFixture(&fakeProvider{reply: "ok"})

	_, err := svc.SendMessage(context.Background(), SendMessageInput{Message: "hi"})
	assert.Equal(t, disol_errors.KindValidation, disol_errors.KindOf(err))
	_, err = svc.SendMessage(context.Background(), SendMessageInput{UserID: "u1"})
	assert.Equal(t, disol_errors.KindValidation, disol_errors.KindOf(err))

	assert.Empty(t, store.sessions)
	assert.Empty(t, store.messages)
}

func TestSendMessage_CompletionFailureKeepsUserTurn(t *testing.T) {
	provider := &fakeProvider{err: disol_errors.Upstream("completion API error", nil)}
	svc, store := newChatFixture(provider)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{UserID: "u1", Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, disol_errors.KindUpstream, disol_errors.KindOf(err))

	require.Len(t, store.sessions, 1)
	require.Len(t, store.messages, 1)
	assert.Equal(t, string(domain.MessageRoleUser), store.messages[0].Role)
}

func TestSendMessage_CompletionOptions(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _ := newChatFixture(provider)

	_, err := svc.SendMessage(context.Background(), SendMessageInput{UserID: "u1", Message: "hello"})
	require.NoError(t, err)

	require.Len(t, provider.calls, 1)
	assert.InDelta(t, ChatTemperature, provider.calls[0].options.Temperature, 1e-9)
	assert.Equal(t, ChatMaxTokens, provider.calls[0].options.MaxTokens)
}

func TestBuildHistory_LastTenInOrderAfterPersona(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _ := newChatFixture(provider)
	ctx := context.Background()

	res, err := svc.SendMessage(ctx, SendMessageInput{UserID: "u1", Message: "turn 0"})
	require.NoError(t, err)
	for i := 1; i < 8; i++ {
		_, err := svc.SendMessage(ctx, SendMessageInput{UserID: "u1", SessionID: res.SessionID, Message: fmt.Sprintf("turn %d", i)})
		require.NoError(t, err)
	}

	last := provider.calls[len(provider.calls)-1].history
	require.Len(t, last, ChatHistoryLimit+1)
	assert.Equal(t, string(domain.MessageRoleSystem), last[0].Role)
	assert.Equal(t, PersonaPrompt, last[0].Content)

	// 15 rows existed at the last call; the newest ten are turns 3..7 with replies.
	turns := last[1:]
	assert.Equal(t, "ok", turns[0].Content)
	assert.Equal(t, "turn 3", turns[1].Content)
	assert.Equal(t, "turn 7", turns[len(turns)-1].Content)
	assert.Equal(t, string(domain.MessageRoleUser), turns[len(turns)-1].Role)
}

func TestGetSessionMessages_Ascending(t *testing.T) {
	svc, _ := newChatFixture(&fakeProvider{reply: "ok"})
	ctx := context.Background()

	res, err := svc.SendMessage(ctx, SendMessageInput{UserID: "u1", Message: "a"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, SendMessageInput{UserID: "u1", SessionID: res.SessionID, Message: "b"})
	require.NoError(t, err)

	msgs, err := svc.GetSessionMessages(ctx, res.SessionID)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	for i := 1; i < len(msgs); i++ {
		assert.True(t, msgs[i-1].CreatedAt.Before(msgs[i].CreatedAt))
	}
	assert.Equal(t, "a", msgs[0].Content)
	assert.Equal(t, "b", msgs[2].Content)
}

func TestGetUserSessions(t *testing.T) {
	svc, _ := newChatFixture(&fakeProvider{reply: "ok"})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, SendMessageInput{UserID: "u1", Message: "older"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, SendMessageInput{UserID: "u1", Message: "newer"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, SendMessageInput{UserID: "u2", Message: "other"})
	require.NoError(t, err)

	sessions, err := svc.GetUserSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newer", sessions[0].Title)
	assert.Equal(t, "older", sessions[1].Title)

	_, err = svc.GetUserSessions(ctx, "")
	assert.Equal(t, disol_errors.KindValidation, disol_errors.KindOf(err))
}

package keybase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRun replaces the subprocess runner and records the arguments of each call
type stubRun struct {
	calls  [][]string
	output []byte
	err    error
}

func (s *stubRun) run(ctx context.Context, args ...string) ([]byte, error) {
	s.calls = append(s.calls, args)
	return s.output, s.err
}

func newStubClient(output []byte, err error) (*Client, *stubRun) {
	stub := &stubRun{output: output, err: err}
	c := NewClient("keybase")
	c.run = stub.run
	return c, stub
}

func TestConversationDisplayName(t *testing.T) {
	tests := []struct {
		name        string
		conv        Conversation
		currentUser string
		expected    string
	}{
		{
			"team_channel",
			Conversation{Channel: Channel{Name: "acme", MembersType: "team", TopicName: "general"}},
			"alice",
			"Team: acme (Topic: general)",
		},
		{
			"team_channel_missing_metadata",
			Conversation{Channel: Channel{MembersType: "team"}},
			"alice",
			"Team: unknown (Topic: unknown)",
		},
		{
			"direct_message_excludes_current_user",
			Conversation{Channel: Channel{Name: "alice,bob"}},
			"alice",
			"bob",
		},
		{
			"group_message",
			Conversation{Channel: Channel{Name: "alice, bob, carol"}},
			"alice",
			"bob,carol",
		},
		{
			"self_chat_keeps_own_name",
			Conversation{Channel: Channel{Name: "alice"}},
			"alice",
			"alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.conv.DisplayName(tt.currentUser))
		})
	}
}

func TestConversationSpec(t *testing.T) {
	team := Conversation{Channel: Channel{Name: "acme", MembersType: "team", TopicName: "general"}}
	assert.Equal(t, "acme,general", team.Spec())

	dm := Conversation{Channel: Channel{Name: "alice,bob"}}
	assert.Equal(t, "alice,bob", dm.Spec())
}

func TestWhoami(t *testing.T) {
	client, stub := newStubClient([]byte("alice\n"), nil)

	user, err := client.Whoami(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	require.Len(t, stub.calls, 1)
	assert.Equal(t, []string{"whoami"}, stub.calls[0])
}

func TestWhoami_Empty(t *testing.T) {
	client, _ := newStubClient([]byte("  \n"), nil)

	_, err := client.Whoami(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty username")
}

func TestListConversations(t *testing.T) {
	resp := `{"result":{"conversations":[
		{"id":"c1","channel":{"name":"alice,bob","members_type":"impteamnative"},"active_at":100},
		{"id":"c2","channel":{"name":"acme","members_type":"team","topic_name":"general"},"active_at":200}
	]}}`
	client, stub := newStubClient([]byte(resp), nil)

	convs, err := client.ListConversations(context.Background())
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "c1", convs[0].ID)
	assert.Equal(t, int64(200), convs[1].ActiveAt)

	require.Len(t, stub.calls, 1)
	args := stub.calls[0]
	require.Len(t, args, 4)
	assert.Equal(t, []string{"chat", "api", "-m"}, args[:3])

	var payload apiPayload
	require.NoError(t, json.Unmarshal([]byte(args[3]), &payload))
	assert.Equal(t, "list", payload.Method)
}

func TestListConversations_BadJSON(t *testing.T) {
	client, _ := newStubClient([]byte("not json"), nil)

	_, err := client.ListConversations(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse conversation list")
}

func TestReadMessages(t *testing.T) {
	client, stub := newStubClient([]byte("[1] alice: hi\n[2] bob: hello\n"), nil)

	lines, err := client.ReadMessages(context.Background(), "alice,bob", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"[1] alice: hi", "[2] bob: hello"}, lines)
	assert.Equal(t, []string{"chat", "read", "--at-least", "10", "alice,bob"}, stub.calls[0])
}

func TestReadMessages_Empty(t *testing.T) {
	client, _ := newStubClient([]byte(""), nil)

	lines, err := client.ReadMessages(context.Background(), "alice,bob", 10)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadMessagesSince(t *testing.T) {
	client, stub := newStubClient([]byte("[3] bob: new\n"), nil)
	since := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	lines, err := client.ReadMessagesSince(context.Background(), "alice,bob", since)
	require.NoError(t, err)
	assert.Equal(t, []string{"[3] bob: new"}, lines)
	assert.Equal(t, []string{"chat", "read", "--since", "2026-02-01T12:00:00Z", "alice,bob"}, stub.calls[0])
}

func TestSendMessage(t *testing.T) {
	client, stub := newStubClient([]byte(`{"result":{}}`), nil)

	err := client.SendMessage(context.Background(), "c1", "hello there")
	require.NoError(t, err)

	var payload apiPayload
	require.NoError(t, json.Unmarshal([]byte(stub.calls[0][3]), &payload))
	assert.Equal(t, "send", payload.Method)
	assert.Equal(t, "c1", payload.Params.Options.ConversationID)
	require.NotNil(t, payload.Params.Options.Message)
	assert.Equal(t, "hello there", payload.Params.Options.Message.Body)
	assert.Equal(t, "text", payload.Params.Options.Message.Type)
}

func TestAttachFile(t *testing.T) {
	client, stub := newStubClient([]byte("uploaded\n"), nil)

	out, err := client.AttachFile(context.Background(), "alice,bob", "/tmp/photo.png")
	require.NoError(t, err)
	assert.Equal(t, "uploaded", out)
	assert.Equal(t, []string{"chat", "upload", "alice,bob", "/tmp/photo.png"}, stub.calls[0])
}

func TestDownloadFile(t *testing.T) {
	client, stub := newStubClient([]byte("downloaded\n"), nil)

	out, err := client.DownloadFile(context.Background(), "alice,bob", "42", "./downloads/42")
	require.NoError(t, err)
	assert.Equal(t, "downloaded", out)
	assert.Equal(t, []string{"chat", "download", "alice,bob", "42", "--outfile", "./downloads/42"}, stub.calls[0])
}

func TestRunError_Propagates(t *testing.T) {
	client, _ := newStubClient(nil, errors.New("keybase chat: not logged in"))

	_, err := client.ReadMessages(context.Background(), "alice,bob", 10)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

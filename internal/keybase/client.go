package keybase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// runFunc executes the keybase binary and returns stdout. Swappable for tests.
type runFunc func(ctx context.Context, args ...string) ([]byte, error)

// Client wraps the keybase command-line tool and provides convenience methods
// for the chat operations the TUI needs. Every call spawns one short-lived
// subprocess; no session state is shared between calls.
type Client struct {
	binary string
	run    runFunc
}

// NewClient creates a new Keybase client using the given binary name
// (normally just "keybase", resolved via PATH)
func NewClient(binary string) *Client {
	if binary == "" {
		binary = "keybase"
	}
	c := &Client{binary: binary}
	c.run = c.execRun
	return c
}

func (c *Client) execRun(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("keybase %s: %s", args[0], detail)
	}
	return stdout.Bytes(), nil
}

// Channel identifies a conversation endpoint as the keybase API reports it
type Channel struct {
	Name        string `json:"name"`
	MembersType string `json:"members_type"`
	TopicName   string `json:"topic_name"`
}

// Conversation is one entry from the chat api "list" method. The client holds
// only this snapshot; keybase itself is the source of truth.
type Conversation struct {
	ID       string  `json:"id"`
	Channel  Channel `json:"channel"`
	ActiveAt int64   `json:"active_at"`
}

// DisplayName derives a human-readable name for the conversation: team name
// plus topic for team channels, otherwise the peer list minus the current
// user. If removing the current user would leave nothing (self-chat), the
// full peer list is kept.
func (c Conversation) DisplayName(currentUser string) string {
	if c.Channel.MembersType == "team" {
		name := c.Channel.Name
		if name == "" {
			name = "unknown"
		}
		topic := c.Channel.TopicName
		if topic == "" {
			topic = "unknown"
		}
		return fmt.Sprintf("Team: %s (Topic: %s)", name, topic)
	}
	parts := strings.Split(c.Channel.Name, ",")
	var names, others []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		names = append(names, p)
		if p != currentUser {
			others = append(others, p)
		}
	}
	if len(others) == 0 {
		others = names
	}
	return strings.Join(others, ",")
}

// Spec returns the addressing string used by chat read/upload/download:
// "team,topic" for team channels, the raw peer list otherwise
func (c Conversation) Spec() string {
	if c.Channel.MembersType == "team" {
		return fmt.Sprintf("%s,%s", c.Channel.Name, c.Channel.TopicName)
	}
	return c.Channel.Name
}

// apiPayload is the envelope for `keybase chat api -m`
type apiPayload struct {
	Method string    `json:"method"`
	Params apiParams `json:"params"`
}

type apiParams struct {
	Options apiOptions `json:"options"`
}

type apiOptions struct {
	ConversationID string      `json:"conversation_id,omitempty"`
	Message        *apiMessage `json:"message,omitempty"`
}

type apiMessage struct {
	Body string `json:"body"`
	Type string `json:"type"`
}

// Whoami resolves the logged-in keybase username
func (c *Client) Whoami(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "whoami")
	if err != nil {
		return "", err
	}
	user := strings.TrimSpace(string(out))
	if user == "" {
		return "", fmt.Errorf("keybase whoami: empty username")
	}
	return user, nil
}

// ListConversations returns all conversations visible to the current user
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	payload, err := json.Marshal(apiPayload{Method: "list"})
	if err != nil {
		return nil, fmt.Errorf("marshal list payload: %w", err)
	}
	out, err := c.run(ctx, "chat", "api", "-m", string(payload))
	if err != nil {
		return nil, err
	}
	var resp struct {
		Result struct {
			Conversations []Conversation `json:"conversations"`
		} `json:"result"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("parse conversation list: %w", err)
	}
	return resp.Result.Conversations, nil
}

// ReadMessages reads at least atLeast prior messages from the conversation
// and returns them as raw display lines
func (c *Client) ReadMessages(ctx context.Context, spec string, atLeast int) ([]string, error) {
	out, err := c.run(ctx, "chat", "read", "--at-least", fmt.Sprintf("%d", atLeast), spec)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ReadMessagesSince reads messages strictly newer than since
func (c *Client) ReadMessagesSince(ctx context.Context, spec string, since time.Time) ([]string, error) {
	out, err := c.run(ctx, "chat", "read", "--since", since.UTC().Format(time.RFC3339), spec)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// SendMessage posts a text message to the conversation via the chat api
func (c *Client) SendMessage(ctx context.Context, conversationID, body string) error {
	payload, err := json.Marshal(apiPayload{
		Method: "send",
		Params: apiParams{Options: apiOptions{
			ConversationID: conversationID,
			Message:        &apiMessage{Body: body, Type: "text"},
		}},
	})
	if err != nil {
		return fmt.Errorf("marshal send payload: %w", err)
	}
	_, err = c.run(ctx, "chat", "api", "-m", string(payload))
	return err
}

// AttachFile uploads a local file to the conversation and returns the CLI output
func (c *Client) AttachFile(ctx context.Context, spec, filePath string) (string, error) {
	out, err := c.run(ctx, "chat", "upload", spec, filePath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// DownloadFile fetches an attachment by message id into outPath and returns
// the CLI output
func (c *Client) DownloadFile(ctx context.Context, spec, id, outPath string) (string, error) {
	out, err := c.run(ctx, "chat", "download", spec, id, "--outfile", outPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func splitLines(out []byte) []string {
	text := strings.TrimRight(string(out), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

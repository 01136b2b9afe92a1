package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantKind commandKind
		wantArg  string
	}{
		{
			name:     "help",
			input:    "/help",
			wantOK:   true,
			wantKind: cmdHelp,
		},
		{
			name:     "quit",
			input:    "/quit",
			wantOK:   true,
			wantKind: cmdQuit,
		},
		{
			name:     "change conversation with arg",
			input:    "/cc alice,bob",
			wantOK:   true,
			wantKind: cmdChange,
			wantArg:  "alice,bob",
		},
		{
			name:     "attach file",
			input:    "/af /tmp/report.pdf",
			wantOK:   true,
			wantKind: cmdAttach,
			wantArg:  "/tmp/report.pdf",
		},
		{
			name:     "download file",
			input:    "/df 1234",
			wantOK:   true,
			wantKind: cmdDownload,
			wantArg:  "1234",
		},
		{
			name:     "command name is case insensitive",
			input:    "/HELP",
			wantOK:   true,
			wantKind: cmdHelp,
		},
		{
			name:     "tab separates arg",
			input:    "/cc\tmyteam",
			wantOK:   true,
			wantKind: cmdChange,
			wantArg:  "myteam",
		},
		{
			name:     "arg whitespace trimmed",
			input:    "/af   file.txt  ",
			wantOK:   true,
			wantKind: cmdAttach,
			wantArg:  "file.txt",
		},
		{
			name:     "unknown command",
			input:    "/frobnicate now",
			wantOK:   true,
			wantKind: cmdUnknown,
			wantArg:  "now",
		},
		{
			name:   "plain message",
			input:  "hello there",
			wantOK: false,
		},
		{
			name:   "message with slash in the middle",
			input:  "either/or",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := parseCommand(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantKind, cmd.kind)
			assert.Equal(t, tt.wantArg, cmd.arg)
		})
	}
}

func TestParseCommand_KeepsTypedName(t *testing.T) {
	cmd, ok := parseCommand("/bogus")
	assert.True(t, ok)
	assert.Equal(t, cmdUnknown, cmd.kind)
	assert.Equal(t, "/bogus", cmd.name)
}

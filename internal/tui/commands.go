package tui

import (
	"fmt"
	"strings"
)

type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdHelp
	cmdQuit
	cmdChange
	cmdAttach
	cmdDownload
)

// command is one parsed slash command. name keeps the token the user typed
// so unknown commands can be reported verbatim.
type command struct {
	kind commandKind
	name string
	arg  string
}

// parseCommand recognizes slash commands. Returns false for anything that
// does not start with "/", which callers treat as a plain message.
func parseCommand(text string) (command, bool) {
	if !strings.HasPrefix(text, "/") {
		return command{}, false
	}

	name := text
	arg := ""
	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		name = text[:idx]
		arg = strings.TrimSpace(text[idx+1:])
	}

	cmd := command{name: name, arg: arg}
	switch strings.ToLower(name) {
	case "/help":
		cmd.kind = cmdHelp
	case "/quit":
		cmd.kind = cmdQuit
	case "/cc":
		cmd.kind = cmdChange
	case "/af":
		cmd.kind = cmdAttach
	case "/df":
		cmd.kind = cmdDownload
	default:
		cmd.kind = cmdUnknown
	}
	return cmd, true
}

// executeCommand runs a parsed command against the active session. All
// feedback lands in the message view, not the status line, so it scrolls
// with the conversation the way replies do.
func (a *App) executeCommand(s *chatSession, cmd command) {
	switch cmd.kind {
	case cmdHelp:
		a.appendChatLines(s, strings.Split(helpText(), "\n"))

	case cmdQuit:
		a.quitApp()

	case cmdChange:
		// Bare /cc returns to the conversation list
		if cmd.arg == "" {
			a.closeChat()
			return
		}
		a.appendChatLines(s, []string{fmt.Sprintf("Switching to conversation: %s", cmd.arg)})
		a.changeConversation(cmd.arg)

	case cmdAttach:
		if cmd.arg == "" {
			a.appendChatLines(s, []string{"Usage: /af <file_path>"})
			return
		}
		go a.runSessionCommand(s, func() (string, error) {
			return a.attachmentService.Attach(a.ctx, s.conv.Spec(), cmd.arg)
		})

	case cmdDownload:
		if cmd.arg == "" {
			a.appendChatLines(s, []string{"Usage: /df <file_identifier>"})
			return
		}
		go a.runSessionCommand(s, func() (string, error) {
			return a.attachmentService.Download(a.ctx, s.conv.Spec(), cmd.arg)
		})

	default:
		a.appendChatLines(s, []string{"Unknown command. Type /help for help."})
	}
}

// runSessionCommand executes a slow service call off the UI thread and
// reports its result line into the session, unless the session was closed
// in the meantime
func (a *App) runSessionCommand(s *chatSession, fn func() (string, error)) {
	result, err := fn()
	a.QueueUpdateDraw(func() {
		if a.session != s {
			return
		}
		if err != nil {
			a.appendChatLines(s, []string{fmt.Sprintf("Error: %v", err)})
			return
		}
		a.appendChatLines(s, []string{result})
	})
}

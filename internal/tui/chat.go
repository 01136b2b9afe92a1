package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ajramos/kbchat-tui/internal/chat"
	"github.com/ajramos/kbchat-tui/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// inputHistoryLimit caps how many persisted lines are offered for recall
const inputHistoryLimit = 50

// chatSession holds everything owned by one open conversation: the merger
// with its seen-id set, the poller with its cursor, and the chat widgets.
// It is dropped whole when the user navigates away.
type chatSession struct {
	conv     services.ConversationItem
	merger   *chat.Merger
	poller   *chat.Poller
	layout   *tview.Flex
	messages *tview.TextView
	input    *tview.InputField

	// Input recall, newest first
	history    []string
	historyIdx int
}

// newChatSession builds the widgets and poller for a conversation. The
// poller is not started here; that happens after the initial bulk load has
// seeded the seen-id set.
func (a *App) newChatSession(item services.ConversationItem) *chatSession {
	s := &chatSession{
		conv:       item,
		merger:     chat.NewMerger(),
		historyIdx: -1,
	}

	s.messages = tview.NewTextView()
	s.messages.SetScrollable(true)
	s.messages.SetWrap(true)
	s.messages.SetBorder(true)
	s.messages.SetTitle(fmt.Sprintf(" %s ", item.Name))
	s.messages.SetBorderColor(a.colors.Border.Color())
	s.messages.SetTitleColor(a.colors.Title.Color())
	s.messages.SetTextColor(a.colors.Message.Color())

	s.input = tview.NewInputField()
	s.input.SetLabel("> ")
	s.input.SetFieldWidth(0)
	s.input.SetPlaceholder("Type message or command here...")
	s.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := s.input.GetText()
		s.input.SetText("")
		a.handleChatInput(s, text)
	})
	s.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			a.closeChat()
			return nil
		case tcell.KeyUp:
			a.recallHistory(s, 1)
			return nil
		case tcell.KeyDown:
			a.recallHistory(s, -1)
			return nil
		}
		return event
	})

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow)
	s.layout.AddItem(s.messages, 0, 1, false)
	s.layout.AddItem(s.input, 1, 0, true)

	spec := item.Spec()
	fetch := func(ctx context.Context, since time.Time) ([]string, error) {
		return a.messageService.ReadSince(ctx, spec, since)
	}
	deliver := func(lines []string) {
		a.QueueUpdateDraw(func() {
			// The session may have been torn down while the fetch was in
			// flight; never touch the view after that
			if a.session != s {
				return
			}
			a.appendChatLines(s, lines)
		})
	}
	s.poller = chat.NewPoller(a.Config.GetPollInterval(), fetch, s.merger, deliver, a.logger)

	return s
}

// loadInitialMessages performs the initial bulk load, seeds the seen-id set
// through the same merge path the poller uses, and only then starts polling
func (a *App) loadInitialMessages(s *chatSession) {
	lines, err := a.messageService.ReadInitial(a.ctx, s.conv.Spec())

	a.QueueUpdateDraw(func() {
		if a.session != s {
			return
		}
		if err != nil {
			a.appendChatLines(s, []string{fmt.Sprintf("Error reading previous messages: %v", err)})
		} else {
			a.appendChatLines(s, s.merger.Merge(lines))
		}
		s.poller.Start()
	})

	if history, err := a.historyService.RecentInputs(a.ctx, s.conv.ID(), inputHistoryLimit); err == nil && len(history) > 0 {
		a.QueueUpdateDraw(func() {
			if a.session == s {
				s.history = history
			}
		})
	}
}

// appendChatLines appends lines to the message view and keeps it pinned to
// the newest message. UI thread only.
func (a *App) appendChatLines(s *chatSession, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(s.messages, tview.Escape(line))
	}
	s.messages.ScrollToEnd()
}

// handleChatInput routes one submitted line: slash input goes through the
// command interpreter, anything else is sent verbatim followed by an
// immediate out-of-band poll
func (a *App) handleChatInput(s *chatSession, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.historyIdx = -1
	s.history = append([]string{text}, s.history...)
	go func() {
		if err := a.historyService.RecordInput(a.ctx, s.conv.ID(), text); err != nil {
			a.debugPrintf("record input history: %v", err)
		}
	}()

	if cmd, ok := parseCommand(text); ok {
		a.executeCommand(s, cmd)
		return
	}

	go func() {
		if err := a.messageService.Send(a.ctx, s.conv.ID(), text); err != nil {
			a.errorHandler.HandleError(a.ctx, err, "Failed to send message")
		}
		// Poll immediately so the sent message appears without waiting a
		// full cycle; serialized with the regular cycle by the poller
		s.poller.PollNow()
	}()
}

// recallHistory moves through previously typed input; dir +1 is older,
// -1 is newer
func (a *App) recallHistory(s *chatSession, dir int) {
	if len(s.history) == 0 {
		return
	}
	idx := s.historyIdx + dir
	if idx < -1 {
		idx = -1
	}
	if idx >= len(s.history) {
		idx = len(s.history) - 1
	}
	s.historyIdx = idx
	if idx == -1 {
		s.input.SetText("")
		return
	}
	s.input.SetText(s.history[idx])
}

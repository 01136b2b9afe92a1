package tui

import (
	"fmt"

	"github.com/ajramos/kbchat-tui/internal/services"
)

// Screen identifies the active view of the navigation state machine. Exactly
// one screen receives input at a time; all transitions run on the UI thread.
type Screen int

const (
	ScreenConversationList Screen = iota
	ScreenChat
)

// enterConversationList is the entry action of the list state: the
// conversation list is refreshed from the backend every time it becomes
// active
func (a *App) enterConversationList() {
	a.screen = ScreenConversationList
	a.pages.SwitchToPage(pageConversations)
	a.refreshConversations()
}

// openConversation handles the select(conv) transition into the chat state.
// Entry actions: create the per-session merger and poller, perform the
// initial bulk load to seed the seen-id set, then start polling.
func (a *App) openConversation(item services.ConversationItem) {
	s := a.newChatSession(item)
	a.session = s
	a.screen = ScreenChat

	a.pages.AddAndSwitchToPage(pageChat, s.layout, true)
	a.SetFocus(s.input)
	a.debugPrintf("opened conversation %s (%s)", item.ID(), item.Name)

	go a.loadInitialMessages(s)
}

// closeChat handles the back transition: stop the poller, drop the session
// (merger, seen-id set and cursor go with it), return to the refreshed list
func (a *App) closeChat() {
	if a.session != nil {
		a.session.poller.Stop()
		a.session = nil
	}
	a.pages.RemovePage(pageChat)
	a.enterConversationList()
}

// changeConversation handles /cc with a target: same teardown as back, then
// re-select if the target resolves, otherwise remain on the list
func (a *App) changeConversation(target string) {
	a.closeChat()

	go func() {
		item, found, err := a.conversationService.ResolveConversation(a.ctx, target)
		if err != nil {
			a.errorHandler.HandleError(a.ctx, err, "Could not resolve conversation")
			return
		}
		if !found {
			a.errorHandler.ShowWarning(a.ctx, fmt.Sprintf("No conversation matching %q", target))
			return
		}
		a.QueueUpdateDraw(func() {
			// Only re-select if the user is still on the list
			if a.screen == ScreenConversationList {
				a.openConversation(item)
			}
		})
	}()
}

// quitApp stops any active poller and exits the application
func (a *App) quitApp() {
	if a.session != nil {
		a.session.poller.Stop()
		a.session = nil
	}
	a.cancel()
	a.Stop()
}

package tui

import (
	"fmt"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/mattn/go-runewidth"
)

// maxListNameWidth bounds conversation names in the list view
const maxListNameWidth = 60

// buildConversationsView creates the conversation list screen
func (a *App) buildConversationsView() tview.Primitive {
	list := tview.NewList()
	list.ShowSecondaryText(false)
	list.SetBorder(true)
	list.SetTitle(" Conversations ")
	list.SetBorderColor(a.colors.Border.Color())
	list.SetTitleColor(a.colors.Title.Color())
	list.SetSelectedTextColor(a.colors.ListSelected.Color())

	list.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(a.conversations) {
			return
		}
		a.openConversation(a.conversations[index])
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch string(event.Rune()) {
		case a.Config.Keys.Quit:
			a.quitApp()
			return nil
		case a.Config.Keys.Refresh:
			a.refreshConversations()
			return nil
		case a.Config.Keys.Help:
			a.errorHandler.ShowInfo(a.ctx, "Enter opens a conversation; slash commands (/help, /cc, /af, /df, /quit) work inside a chat")
			return nil
		}
		return event
	})

	a.views["conversationList"] = list
	return list
}

// refreshConversations reloads the list from the backend without blocking the
// UI thread. A listing failure is shown in place of data; navigation
// continues either way.
func (a *App) refreshConversations() {
	go func() {
		items, err := a.conversationService.ListConversations(a.ctx)
		a.QueueUpdateDraw(func() {
			list, ok := a.views["conversationList"].(*tview.List)
			if !ok {
				return
			}
			list.Clear()
			if err != nil {
				a.conversations = nil
				list.AddItem(fmt.Sprintf("Error listing conversations: %v", err), "", 0, nil)
				return
			}
			a.conversations = items
			if len(items) == 0 {
				list.AddItem("No conversations found.", "", 0, nil)
				return
			}
			for _, item := range items {
				list.AddItem(runewidth.Truncate(item.Name, maxListNameWidth, "…"), "", 0, nil)
			}
		})
	}()
}

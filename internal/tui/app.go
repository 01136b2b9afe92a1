package tui

import (
	"context"
	"log"
	"os"

	"github.com/ajramos/kbchat-tui/internal/config"
	"github.com/ajramos/kbchat-tui/internal/db"
	"github.com/ajramos/kbchat-tui/internal/keybase"
	"github.com/ajramos/kbchat-tui/internal/services"
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

// App encapsulates the terminal UI and the Keybase client
type App struct {
	*tview.Application
	Config *config.Config
	Client *keybase.Client

	ctx    context.Context
	cancel context.CancelFunc

	pages *tview.Pages
	views map[string]tview.Primitive

	currentUser string

	// Navigation state machine
	screen  Screen
	session *chatSession

	// Conversation list state (owned by the UI thread)
	conversations []services.ConversationItem

	// Theme
	colors *config.ColorsConfig

	// Services
	conversationService services.ConversationService
	messageService      services.MessageService
	attachmentService   services.AttachmentService
	historyService      services.HistoryService

	errorHandler *ErrorHandler

	// Debug logging
	debug   bool
	logger  *log.Logger
	logFile *os.File
}

// Page names registered on the tview.Pages primitive
const (
	pageConversations = "conversations"
	pageChat          = "chat"
)

// NewApp creates the TUI for an already-resolved user identity
func NewApp(client *keybase.Client, cfg *config.Config, currentUser string) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		Application: tview.NewApplication(),
		Config:      cfg,
		Client:      client,
		ctx:         ctx,
		cancel:      cancel,
		pages:       tview.NewPages(),
		views:       make(map[string]tview.Primitive),
		currentUser: currentUser,
		screen:      ScreenConversationList,
		colors:      config.DefaultColors(),
		debug:       cfg.Debug,
	}

	a.conversationService = services.NewConversationService(client, cfg, currentUser)
	a.messageService = services.NewMessageService(client, cfg)
	a.attachmentService = services.NewAttachmentService(client, cfg)
	a.historyService = services.NewHistoryService(nil)

	return a
}

// RegisterHistoryStore wires the optional input-history store into the app
func (a *App) RegisterHistoryStore(store *db.HistoryStore) {
	a.historyService = services.NewHistoryService(store)
}

// Run starts the application and blocks until quit
func (a *App) Run() error {
	a.initLogger()
	defer a.closeLogger()
	a.loadTheme()

	statusView := tview.NewTextView()
	statusView.SetDynamicColors(true)
	statusView.SetTextAlign(tview.AlignLeft)
	statusView.SetTextColor(a.colors.StatusInfo.Color())
	a.views["status"] = statusView
	a.errorHandler = NewErrorHandler(a, statusView, a.logger)

	a.views["conversations"] = a.buildConversationsView()

	root := tview.NewFlex().SetDirection(tview.FlexRow)
	root.AddItem(a.pages, 0, 1, true)
	root.AddItem(statusView, 1, 0, false)

	a.pages.AddPage(pageConversations, a.views["conversations"], true, true)

	a.enterConversationList()

	a.SetRoot(root, true)
	err := a.Application.Run()
	a.cancel()
	return err
}

// loadTheme applies the configured theme file, falling back to the built-in
// palette on any error
func (a *App) loadTheme() {
	if a.Config.Theme == "" {
		return
	}
	loader := config.NewThemeLoader(config.DefaultThemesDir())
	colors, err := loader.LoadThemeFromFile(a.Config.Theme)
	if err != nil {
		if a.logger != nil {
			a.logger.Printf("WARN: could not load theme %q: %v", a.Config.Theme, err)
		}
		return
	}
	a.colors = colors
}

// getStatusColor resolves a status level to a theme color
func (a *App) getStatusColor(kind string) tcell.Color {
	switch kind {
	case "warning":
		return a.colors.StatusWarning.Color()
	case "error":
		return a.colors.StatusError.Color()
	case "success":
		return a.colors.StatusSuccess.Color()
	default:
		return a.colors.StatusInfo.Color()
	}
}

// statusBaseline is shown when no status message is active
func (a *App) statusBaseline() string {
	if a.screen == ScreenChat {
		return "Type a message or command • /help for commands • Esc to go back"
	}
	return "Enter to open a conversation • " + a.Config.Keys.Refresh + " to refresh • " + a.Config.Keys.Quit + " to quit"
}

func (a *App) debugPrintf(format string, args ...interface{}) {
	if a.debug && a.logger != nil {
		a.logger.Printf("DEBUG: "+format, args...)
	}
}

package tui

// helpText returns the static command reference shown by /help
func helpText() string {
	return "Commands:\n" +
		"  /help                  - Show this help message.\n" +
		"  /cc [conversation]     - Change channel. With an argument, switches to that conversation.\n" +
		"  /af <file_path>        - Attach a file to the conversation.\n" +
		"  /df <file_identifier>  - Download a file (provide file/message ID).\n" +
		"  /quit                  - Quit the application."
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ajramos/kbchat-tui/internal/config"
	"github.com/ajramos/kbchat-tui/internal/db"
	"github.com/ajramos/kbchat-tui/internal/keybase"
	"github.com/ajramos/kbchat-tui/internal/tui"
	"github.com/ajramos/kbchat-tui/internal/version"
)

func main() {
	// Essential command line flags only (GNU-style double dashes)
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: ~/.config/kbchat-tui/config.json)")
	setupFlag := flag.Bool("setup", false, "Run interactive setup wizard")
	versionFlag := flag.Bool("version", false, "Show version information and exit")

	// Override flag usage text to show clean, simple usage
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s                        # Run with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --setup                # Run interactive setup wizard\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version              # Show version information\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --config custom.json   # Use custom configuration\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  --config string\n        %s\n", "Path to JSON configuration file (default: ~/.config/kbchat-tui/config.json)")
		fmt.Fprintf(os.Stderr, "  --setup\n        %s\n", "Run interactive setup wizard")
		fmt.Fprintf(os.Stderr, "  --version\n        %s\n\n", "Show version information and exit")
		fmt.Fprintf(os.Stderr, "Environment Variables:\n")
		fmt.Fprintf(os.Stderr, "  KBCHAT_TUI_CONFIG     Override default config file path\n\n")
		fmt.Fprintf(os.Stderr, "For all other settings (poll interval, downloads, etc.), edit the config file.\n")
	}

	flag.Parse()

	// Handle version flag
	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	// Handle setup mode
	if *setupFlag {
		runSetupWizard()
		return
	}

	// Load configuration with smart defaults and environment variable support
	configPath := getConfigPath(*configPathFlag)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: could not load configuration: %v", err)
		cfg = config.DefaultConfig()
	}

	client := keybase.NewClient(cfg.KeybaseBinary)

	// Resolving the current identity is the one hard requirement: without
	// it conversation names cannot be rendered and nothing else works
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	currentUser, err := client.Whoami(ctx)
	cancel()
	if err != nil {
		log.Fatalf("Unable to determine current user: %v. Is the keybase service running?", err)
	}

	app := tui.NewApp(client, cfg, currentUser)

	// Optional: open database store for input history
	historyPath := cfg.HistoryPath
	if historyPath == "" {
		historyPath = config.DefaultHistoryPath()
	}
	if st, err := db.Open(context.Background(), config.ExpandPath(historyPath)); err == nil {
		defer func() { _ = st.Close() }()
		app.RegisterHistoryStore(db.NewHistoryStore(st))
	} else {
		log.Printf("Warning: could not open input history store: %v", err)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// getConfigPath returns the configuration file path using the following priority:
// 1. CLI flag
// 2. Environment variable KBCHAT_TUI_CONFIG
// 3. Default path ~/.config/kbchat-tui/config.json
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envPath := os.Getenv("KBCHAT_TUI_CONFIG"); envPath != "" {
		return config.ExpandPath(envPath)
	}

	return config.DefaultConfigPath()
}

func runSetupWizard() {
	fmt.Println("kbchat-tui Setup Wizard")
	fmt.Println("=======================")
	fmt.Println()

	defaultConfigPath := config.DefaultConfigPath()

	if _, err := os.Stat(defaultConfigPath); err == nil {
		fmt.Printf("Configuration file already exists: %s\n", defaultConfigPath)
	} else {
		fmt.Printf("Will create configuration file: %s\n", defaultConfigPath)
	}

	// The keybase CLI must be installed and logged in
	client := keybase.NewClient("")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	user, err := client.Whoami(ctx)
	cancel()
	if err != nil {
		fmt.Println("Could not talk to the keybase CLI.")
		fmt.Println()
		fmt.Println("To set up Keybase:")
		fmt.Println("1. Install Keybase from https://keybase.io/download")
		fmt.Println("2. Run 'keybase login'")
		fmt.Println("3. Re-run this wizard")
		fmt.Println()
	} else {
		fmt.Printf("Keybase is available, logged in as: %s\n", user)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(defaultConfigPath); os.IsNotExist(err) {
		fmt.Println()
		fmt.Print("Create default configuration file? [Y/n]: ")

		var response string
		_, _ = fmt.Scanln(&response) // User input - error not actionable

		if response == "" || strings.ToLower(response) == "y" || strings.ToLower(response) == "yes" {
			cfg := config.DefaultConfig()
			if err := cfg.SaveConfig(defaultConfigPath); err != nil {
				fmt.Printf("Failed to create config file: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Created configuration file: %s\n", defaultConfigPath)
		}
	}

	fmt.Println()
	fmt.Println("Setup complete! You can now run:")
	fmt.Printf("   %s\n", os.Args[0])
}

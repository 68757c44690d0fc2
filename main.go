package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"triage/internal/cli"
	"triage/internal/config"
	"triage/internal/daily"
	"triage/internal/inbox"
	"triage/internal/logs"
	"triage/internal/notify"
	"triage/internal/tui"
	"triage/internal/vault"
)

func main() {
	// A .env next to the binary can supply TRIAGE_VAULT etc.
	_ = godotenv.Load()

	// Parse CLI flags
	vaultFlag := flag.String("vault", "", "Vault directory")
	flag.StringVar(vaultFlag, "v", "", "Vault directory (shorthand)")
	flag.Parse()

	cliFlags := config.CLIFlags{VaultDir: *vaultFlag}

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.WithError(err).Warn("could not create config file")
	}

	// Ensure vault directories exist
	if err := cfg.EnsureVaultDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create vault directories: %v\n", err)
		os.Exit(1)
	}

	// Reinitialize logger into the vault
	if err := logs.Initialize(cfg.VaultDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	vlt, err := vault.Open(cfg.VaultDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	persist := func() error { return config.Save(cfg) }

	// Check for CLI subcommands
	args := flag.Args()
	if len(args) > 0 {
		stdout := notify.Func(func(message string) { fmt.Println(message) })
		svc := cli.Services{
			Inbox: inbox.NewService(vlt, cfg, stdout),
			Daily: daily.NewService(vlt, cfg, stdout, persist),
		}
		os.Exit(cli.Run(args, svc))
	}

	// TUI mode: service notifications feed the notice bar through a
	// channel the app model listens on.
	notices := make(chan string, 16)
	notifier := notify.Func(func(message string) {
		select {
		case notices <- message:
		default:
			logs.Logger.Warnf("dropped notice: %s", message)
		}
	})

	inboxSvc := inbox.NewService(vlt, cfg, notifier)
	dailySvc := daily.NewService(vlt, cfg, notifier, persist)

	var watcherEvents <-chan struct{}
	watcher, err := vault.NewWatcher(
		vlt.Abs(cfg.InboxFolder),
		vlt.Abs(cfg.DailyFolder),
	)
	if err != nil {
		logs.Logger.WithError(err).Warn("vault watcher unavailable")
	} else {
		watcherEvents = watcher.Events()
		defer watcher.Close()
	}

	logs.Logger.Info("starting app in TUI mode")
	appModel := tui.NewAppModel(cfg, inboxSvc, dailySvc, vlt, persist, notices, watcherEvents)
	p := tea.NewProgram(appModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

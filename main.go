// Package main provides the entry point for the Expense Tray application.
// Expense Tray keeps a small expense log one click away in the desktop
// notification area.
//
// Features:
//   - Tray icon: click to show or hide the window, double-click to add an expense
//   - Animated main window that hides when it loses focus
//   - Expense ledger stored locally in SQLite
//   - Command-line options for scripting
//
// Usage:
//
//	expense-tray [options]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/expense-tray/cli"
	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/config"
	"github.com/yllada/expense-tray/ledger"
	"github.com/yllada/expense-tray/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	configPath  = flag.String("config", "", "Path to the configuration file")
	iconPath    = flag.String("icon", "", "PNG file to use as the tray icon")
	noTray      = flag.Bool("no-tray", false, "Run without a tray icon")

	// CLI flags
	addAmount  = flag.String("add", "", "Record an expense and exit")
	addNote    = flag.String("note", "", "Description for --add")
	showToday  = flag.Bool("today", false, "Show today's total and exit")
	showRecent = flag.Int("recent", 0, "List the latest N expenses and exit")
	dumpConfig = flag.Bool("show-config", false, "Print the effective configuration and exit")
)

func main() {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Expense Tray v%s\n", appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// Use default configuration if there's an error
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultConfig()
	}

	if *dumpConfig {
		if err := cli.ShowConfig(os.Stdout, cfg, cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	logLevel := common.ParseLevel(cfg.LogLevel)
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}

	store := openLedger()
	// os.Exit skips deferred calls.
	exit := func(code int) {
		if store != nil {
			store.Close()
		}
		common.CloseLogger()
		os.Exit(code)
	}

	if *addAmount != "" || *showToday || *showRecent > 0 {
		exit(runCLI(store))
	}

	opts := ui.Options{
		Version:    appVersion,
		Config:     cfg,
		ConfigPath: cfgPath,
		NoTray:     *noTray,
		Ledger:     store,
	}
	if *iconPath != "" {
		icon, err := os.ReadFile(*iconPath)
		if err != nil {
			common.LogWarn("Could not read tray icon %s, using the built-in one: %v", *iconPath, err)
		} else {
			opts.TrayIcon = icon
		}
	}

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(opts)

	setupSignalHandler(app.RequestQuit)

	exitCode := app.Run(os.Args[:1])
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	common.LogInfo("Exited cleanly")
	exit(exitCode)
}

// openLedger opens the expense database. The GUI still runs without it;
// saving is then disabled.
func openLedger() *ledger.Store {
	path, err := ledger.DefaultPath()
	if err != nil {
		common.LogError("Expense ledger unavailable: %v", err)
		return nil
	}
	store, err := ledger.Open(path)
	if err != nil {
		common.LogError("Expense ledger unavailable: %v", err)
		return nil
	}
	return store
}

// runCLI handles command-line interface operations and returns the exit code.
func runCLI(store *ledger.Store) int {
	if store == nil {
		fmt.Fprintln(os.Stderr, "Error: expense ledger unavailable")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(store, os.Stdout)

	var cliErr error
	switch {
	case *addAmount != "":
		cliErr = c.Add(ctx, *addAmount, *addNote)
	case *showToday:
		cliErr = c.Today(ctx)
	case *showRecent > 0:
		cliErr = c.Recent(ctx, *showRecent)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		return 1
	}
	return 0
}

// setupSignalHandler asks the application to quit on SIGINT/SIGTERM, so the
// tray icon is removed and the queue dropped in the usual order.
func setupSignalHandler(quit func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, initiating graceful shutdown...", sig)
		quit()
	}()
}

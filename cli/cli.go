// Package cli provides command-line interface functionality for Expense Tray.
// This allows users to record and review expenses from the terminal without
// launching the GUI application.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yllada/expense-tray/common"
	"github.com/yllada/expense-tray/config"
	"github.com/yllada/expense-tray/ledger"
)

// CLI represents the command-line interface.
type CLI struct {
	store *ledger.Store
	out   io.Writer
	now   func() time.Time
}

// New creates a new CLI instance writing to out.
func New(store *ledger.Store, out io.Writer) *CLI {
	return &CLI{
		store: store,
		out:   out,
		now:   time.Now,
	}
}

// Add records an expense given as user text, e.g. "12.50".
func (c *CLI) Add(ctx context.Context, amount, note string) error {
	cents, err := ledger.ParseAmount(amount)
	if err != nil {
		return err
	}

	e, err := c.store.Add(ctx, cents, note, c.now())
	if err != nil {
		return err
	}

	if e.Description != "" {
		fmt.Fprintf(c.out, "✓ Recorded %s (%s)\n", e.Amount, e.Description)
	} else {
		fmt.Fprintf(c.out, "✓ Recorded %s\n", e.Amount)
	}
	return nil
}

// Today prints today's total.
func (c *CLI) Today(ctx context.Context) error {
	total, err := c.store.Today(ctx, c.now())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, ledger.TodaySummary(total))
	return nil
}

// Recent lists the latest expenses.
func (c *CLI) Recent(ctx context.Context, limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", common.ErrInvalidEntry)
	}

	expenses, err := c.store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(expenses) == 0 {
		fmt.Fprintln(c.out, "No expenses recorded.")
		fmt.Fprintln(c.out, "Double-click the tray icon or use --add to record one.")
		return nil
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tAMOUNT\tDESCRIPTION")
	fmt.Fprintln(w, "--\t----\t------\t-----------")

	for _, e := range expenses {
		// Truncate ID for display
		shortID := e.ID.String()[:8]
		desc := e.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID, e.CreatedAt.Format("2006-01-02 15:04"), e.Amount, desc)
	}

	return w.Flush()
}

// ShowConfig prints the effective configuration and where it was read from.
func ShowConfig(out io.Writer, cfg *config.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return common.WrapError(err, "failed to encode configuration")
	}
	fmt.Fprintf(out, "# %s\n%s", path, data)
	return nil
}

// PrintHelp prints CLI usage help.
func PrintHelp() {
	fmt.Println(`Expense Tray - log expenses from the notification area

Usage:
  expense-tray [OPTIONS]

Options:
  --version         Show version and exit
  --verbose         Enable verbose logging
  --config PATH     Use a different configuration file
  --icon PATH       Use a PNG file as the tray icon
  --no-tray         Run without a tray icon (window only)
  --add AMOUNT      Record an expense and exit
  --note TEXT       Description for --add
  --today           Show today's total and exit
  --recent N        List the latest N expenses and exit
  --show-config     Print the effective configuration and exit
  --help            Show this help message

Examples:
  expense-tray --add 4.50 --note coffee
  expense-tray --today
  expense-tray --recent 10

Notes:
  - Run without options to start in the notification area
  - Click the tray icon to show or hide the window
  - Double-click the tray icon to add an expense`)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dryrunbot/dryrun/journal"
)

var tradesCmd = &cobra.Command{
	Use:   "trades [strategy]",
	Short: "List journaled trades, optionally for one strategy",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTrades,
}

func init() {
	rootCmd.AddCommand(tradesCmd)
}

func runTrades(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Journal.Type != "sqlite" {
		return fmt.Errorf("journal is disabled in config")
	}

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	records, err := j.Trades(name)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no trades recorded")
		return nil
	}

	fmt.Printf("%-20s %-14s %-6s %12s %12s %10s %-12s\n",
		"CLOSED", "STRATEGY", "SIDE", "ENTRY", "EXIT", "PNL", "REASON")
	for _, t := range records {
		fmt.Printf("%-20s %-14s %-6s %12.2f %12.2f %+10.2f %-12s\n",
			t.CloseTime.Format("2006-01-02 15:04"),
			t.Strategy, t.Side, t.EntryPrice, t.ExitPrice, t.PnL, t.Reason)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dryrunbot/dryrun/binance"
	"github.com/dryrunbot/dryrun/state"
	"github.com/dryrunbot/dryrun/strategy"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print each strategy's capital and open position",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := state.NewStore(cfg.StatePath).Load()
	if err != nil {
		return err
	}

	reg, err := strategy.NewRegistry(strategy.BuiltIn()...)
	if err != nil {
		return err
	}

	if !doc.LastUpdated.IsZero() {
		fmt.Printf("State last updated: %s\n\n", doc.LastUpdated.Format("2006-01-02 15:04:05 MST"))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	client := binance.NewClient()

	fmt.Printf("%-14s %-10s %10s %8s %7s  %s\n",
		"STRATEGY", "STATUS", "CAPITAL", "TRADES", "WINS", "POSITION")

	for _, s := range reg.All() {
		p := s.Params()
		entry, ok := doc.Strategies[p.Name]
		if !ok {
			fmt.Printf("%-14s %-10s %10s\n", p.Name, enabledLabel(p.Enabled), "-")
			continue
		}

		position := "-"
		if pos := entry.Open(); pos != nil {
			position = fmt.Sprintf("%s %.6f @ $%.2f (SL $%.2f / TP $%.2f)",
				pos.Side, pos.Size, pos.EntryPrice, pos.StopLoss, pos.TakeProfit)
			if price, err := client.Price(ctx, p.Symbol); err == nil {
				position += fmt.Sprintf(" uPnL $%+.2f", pos.UnrealizedPnL(price))
			}
		}

		fmt.Printf("%-14s %-10s %10.2f %8d %6.0f%%  %s\n",
			p.Name, enabledLabel(p.Enabled), entry.Capital,
			len(entry.ClosedTrades), entry.WinRate()*100, position)
	}
	return nil
}

func enabledLabel(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

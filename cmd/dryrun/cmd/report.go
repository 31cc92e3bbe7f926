package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/state"
	"github.com/dryrunbot/dryrun/strategy"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print aggregate performance across all strategies",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
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

	var (
		totalCapital float64
		totalPnL     float64
		totalTrades  int
		totalWins    int
		byReason     = map[ledger.ExitReason]int{}
	)

	names := make([]string, 0, len(doc.Strategies))
	for name := range doc.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-14s %10s %10s %8s %10s %8s %7s\n",
		"STRATEGY", "INITIAL", "CAPITAL", "RETURN", "PNL", "TRADES", "WINS")
	for _, name := range names {
		entry := doc.Strategies[name]
		totalCapital += entry.Capital
		totalPnL += entry.TotalPnL()
		totalTrades += len(entry.ClosedTrades)
		for _, tr := range entry.ClosedTrades {
			if tr.Win() {
				totalWins++
			}
			byReason[tr.ExitReason]++
		}

		initial, ret := "-", "-"
		if strat := reg.Get(name); strat != nil {
			cap0 := strat.Params().Capital
			initial = fmt.Sprintf("%.2f", cap0)
			if cap0 > 0 {
				ret = fmt.Sprintf("%+.2f%%", (entry.Capital-cap0)/cap0*100)
			}
		}
		fmt.Printf("%-14s %10s %10.2f %8s %+10.2f %8d %6.0f%%\n",
			name, initial, entry.Capital, ret, entry.TotalPnL(),
			len(entry.ClosedTrades), entry.WinRate()*100)
	}

	fmt.Printf("\nTotal capital: $%.2f\n", totalCapital)
	fmt.Printf("Total PnL:     $%+.2f\n", totalPnL)
	if totalTrades > 0 {
		fmt.Printf("Trades:        %d (%.0f%% wins)\n",
			totalTrades, float64(totalWins)/float64(totalTrades)*100)
		for _, reason := range []ledger.ExitReason{
			ledger.ExitStopLoss, ledger.ExitTakeProfit, ledger.ExitTimeStop,
		} {
			if n := byReason[reason]; n > 0 {
				fmt.Printf("  %-12s %d\n", reason, n)
			}
		}
	}
	return nil
}

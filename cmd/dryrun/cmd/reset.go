package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dryrunbot/dryrun/ledger"
	"github.com/dryrunbot/dryrun/state"
	"github.com/dryrunbot/dryrun/strategy"
)

var resetCmd = &cobra.Command{
	Use:   "reset [strategy]",
	Short: "Reset one strategy, or every strategy, to starting capital",
	Long: `Reset wipes a strategy's open position and trade history and restores
its configured starting capital. With no argument every registered
strategy is reset. Refuses to run while the bot holds the lock.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReset,
}

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "skip confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg, err := strategy.NewRegistry(strategy.BuiltIn()...)
	if err != nil {
		return err
	}

	var targets []strategy.Strategy
	if len(args) == 1 {
		strat := reg.Get(args[0])
		if strat == nil {
			return fmt.Errorf("unknown strategy %q", args[0])
		}
		targets = []strategy.Strategy{strat}
	} else {
		targets = reg.All()
	}

	// Taking the lock keeps a running bot from racing the rewrite.
	lock, err := state.AcquireLock(cfg.LockPath, time.Now())
	if err != nil {
		return err
	}
	defer lock.Release()

	if !resetYes {
		if len(targets) == 1 {
			fmt.Printf("This wipes %s's position and trade history. Re-run with --yes to confirm.\n",
				targets[0].Params().Name)
		} else {
			fmt.Printf("This wipes all %d strategies' positions and trade history. Re-run with --yes to confirm.\n",
				len(targets))
		}
		return nil
	}

	store := state.NewStore(cfg.StatePath)
	doc, err := store.Load()
	if err != nil {
		return err
	}

	for _, strat := range targets {
		p := strat.Params()
		doc.Strategies[p.Name] = ledger.NewEntry(p.Capital)
		fmt.Printf("%s reset to $%.2f\n", p.Name, p.Capital)
	}
	return store.Save(doc, time.Now())
}

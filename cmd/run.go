package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/checkin/internal/app"
	"github.com/abhisek/checkin/internal/norms"
	"github.com/spf13/cobra"
)

// runApp resolves the bank, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	b, cons, err := resolveBank(cmd)
	if err != nil {
		return fmt.Errorf("load bank: %w", err)
	}

	seed, _ := cmd.Flags().GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return app.Run(app.Options{
		Bank:        b,
		Constraints: cons,
		Norms:       norms.Builtin(),
		Seed:        seed,
	})
}

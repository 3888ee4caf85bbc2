package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <bank.json>",
	Short: "Check a bank file against the schema and structural rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cons, err := bank.Load(args[0])
		if err != nil {
			var cfgErr *bank.ConfigError
			if errors.As(err, &cfgErr) {
				fmt.Fprintf(os.Stderr, "%s: %d problem(s)\n", args[0], len(cfgErr.Problems))
				for _, p := range cfgErr.Problems {
					fmt.Fprintf(os.Stderr, "  - %s\n", p)
				}
				return errors.New("bank invalid")
			}
			return err
		}

		fmt.Printf("%s: OK\n", args[0])
		fmt.Printf("  name:        %s\n", b.Name)
		fmt.Printf("  format:      %s\n", b.FormatVersion)
		fmt.Printf("  domains:     %d\n", len(b.Domains))
		fmt.Printf("  items:       %d\n", len(b.Items))
		fmt.Printf("  exclusions:  %d\n", cons.Len())
		fmt.Printf("  session cap: %d items\n", b.Config.MaxItems)
		return nil
	},
}

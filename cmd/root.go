package cmd

import (
	"os"

	"github.com/abhisek/checkin/internal/bank"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Adaptive terminal well-being check-in",
	Long:  "Checkin — a short terminal questionnaire that adapts each question to your previous answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to a bank JSON file (overrides CHECKIN_BANK env var)")
	rootCmd.Flags().Uint64("seed", 0, "Session seed for a reproducible check-in (0 picks one)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveBank loads the bank from the --bank flag (highest priority),
// then the CHECKIN_BANK env var, then falls back to the built-in bank.
func resolveBank(cmd *cobra.Command) (*bank.Bank, *bank.Constraints, error) {
	path, _ := cmd.Flags().GetString("bank")
	if path == "" {
		path = os.Getenv("CHECKIN_BANK")
	}
	if path == "" {
		b, cons := bank.Builtin()
		return b, cons, nil
	}
	return bank.Load(path)
}

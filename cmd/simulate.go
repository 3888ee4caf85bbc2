package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/checkin/internal/sim"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run simulated respondents against the bank and report score recovery",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cons, err := resolveBank(cmd)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}

		reps, _ := cmd.Flags().GetInt("reps")
		seed, _ := cmd.Flags().GetUint64("seed")
		thetaVal, _ := cmd.Flags().GetString("theta")

		cfg := sim.Config{Replications: reps, Seed: seed}
		if thetaVal != "" {
			cfg.TrueTheta, err = parseTheta(thetaVal)
			if err != nil {
				return err
			}
		}

		summary, err := sim.Run(b, cons, cfg)
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}

		fmt.Printf("Simulated %d respondents against %q\n", summary.Replications, b.Name)
		fmt.Printf("Mean questions per session: %.1f\n\n", summary.MeanItems)

		// Stop reasons.
		fmt.Println("Stop Reasons")
		fmt.Println(strings.Repeat("─", 48))
		reasons := make([]string, 0, len(summary.StopReasons))
		for r := range summary.StopReasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			n := summary.StopReasons[r]
			fmt.Printf("%-32s  %6d  %4.0f%%\n",
				r, n, 100*float64(n)/float64(summary.Replications))
		}
		fmt.Println()

		// Recovery by domain.
		fmt.Println("Score Recovery")
		fmt.Println(strings.Repeat("─", 64))
		fmt.Printf("%-20s  %8s  %8s  %8s  %10s\n",
			"Domain", "Bias", "RMSE", "Mean SE", "Precision")
		fmt.Println(strings.Repeat("─", 64))
		for _, d := range summary.Domains {
			fmt.Printf("%-20s  %+8.3f  %8.3f  %8.3f  %10.2f\n",
				d.Domain, d.Bias, d.RMSE, d.MeanSE, d.MeanPrecision)
		}
		fmt.Println(strings.Repeat("─", 64))

		return nil
	},
}

// parseTheta parses comma-separated true scores.
func parseTheta(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --theta value %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func init() {
	simulateCmd.Flags().Int("reps", 200, "Number of simulated respondents")
	simulateCmd.Flags().Uint64("seed", 1, "Simulation seed")
	simulateCmd.Flags().String("theta", "", "Fixed true scores, comma-separated in bank domain order")
}

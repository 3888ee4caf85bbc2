package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Browse the item bank",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items (optionally filtered by domain)",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, _, err := resolveBank(cmd)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}

		domain, _ := cmd.Flags().GetString("domain")

		var ids []string
		if domain != "" {
			ids = b.DomainItems(domain)
			if len(ids) == 0 {
				return fmt.Errorf("no items found for domain %q", domain)
			}
		} else {
			ids = b.ItemIDs()
		}

		// Header.
		fmt.Printf("%-14s  %-18s  %-42s  %5s  %2s  %3s\n",
			"ID", "Domain", "Stem", "A", "K", "Rev")
		fmt.Println(strings.Repeat("─", 95))

		for _, id := range ids {
			it, err := b.Item(id)
			if err != nil {
				return err
			}
			stem := it.Stem
			if len(stem) > 42 {
				stem = stem[:39] + "..."
			}
			rev := ""
			if it.Reversed {
				rev = "yes"
			}
			fmt.Printf("%-14s  %-18s  %-42s  %5.2f  %2d  %3s\n",
				it.ID, it.Domain, stem, it.Discrimination, it.Categories, rev)
		}

		fmt.Printf("\n%d items\n", len(ids))
		return nil
	},
}

var itemsShowCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show one item's full calibration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, cons, err := resolveBank(cmd)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}

		it, err := b.Item(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", it.ID, it.Domain)
		fmt.Printf("  %q\n\n", it.Stem)
		fmt.Printf("  discrimination:  %.3f\n", it.Discrimination)
		fmt.Printf("  categories:      %d\n", it.Categories)
		fmt.Printf("  reversed:        %v\n", it.Reversed)

		var ths []string
		for _, th := range it.Thresholds {
			if math.IsNaN(th) || math.IsInf(th, 0) {
				continue
			}
			ths = append(ths, fmt.Sprintf("%+.2f", th))
		}
		fmt.Printf("  thresholds:      %s\n", strings.Join(ths, "  "))

		var labels []string
		for i, l := range b.ScaleFor(it) {
			labels = append(labels, fmt.Sprintf("%d) %s", i+1, l))
		}
		fmt.Printf("  scale:           %s\n", strings.Join(labels, "  "))

		if partners := cons.Partners(it.ID); len(partners) > 0 {
			fmt.Printf("  never paired:    %s\n", strings.Join(partners, ", "))
		}
		return nil
	},
}

func init() {
	itemsListCmd.Flags().String("domain", "", "Filter by domain (e.g. depression)")

	itemsCmd.AddCommand(itemsListCmd)
	itemsCmd.AddCommand(itemsShowCmd)
}

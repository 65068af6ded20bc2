package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-sheet/internal/dice"
	"github.com/KirkDiggler/dnd-sheet/internal/services/rest"
	"github.com/KirkDiggler/dnd-sheet/internal/services/sheet"
	"github.com/spf13/cobra"
)

func newRestCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:       "rest <short|long>",
		Short:     "Take a short or long rest",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"short", "long"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer sheet.Confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirmer = sheet.AlwaysConfirm
			}

			return a.withSheet(cmd, confirmer, func(ctx context.Context, sh *sheet.Sheet) error {
				var (
					summary *rest.Summary
					err     error
					label   string
				)
				switch args[0] {
				case "short":
					summary, err = sh.ShortRest(ctx)
					label = "Short rest complete"
				case "long":
					summary, err = sh.LongRest(ctx)
					label = "Long rest complete"
				default:
					return fmt.Errorf("unknown rest %q, expected short or long", args[0])
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if summary == nil {
					fmt.Fprintln(out, "Rest cancelled")
					return nil
				}
				fmt.Fprintln(out, label)
				if len(summary.Restored) > 0 {
					fmt.Fprintf(out, "  Restored: %s\n", strings.Join(summary.Restored, ", "))
				}
				if summary.HPRecovered > 0 {
					fmt.Fprintf(out, "  HP recovered: %d\n", summary.HPRecovered)
				}
				if summary.HitDiceRecovered > 0 {
					fmt.Fprintf(out, "  Hit dice recovered: %d\n", summary.HitDiceRecovered)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newRollCmd(a *app) *cobra.Command {
	var advantage, disadvantage bool
	cmd := &cobra.Command{
		Use:   "roll <dN>",
		Short: "Roll a die and record it in the action log",
		Example: `  sheetctl roll d20 --adv
  sheetctl roll 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sides, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(args[0]), "d"))
			if err != nil {
				return fmt.Errorf("invalid die %q", args[0])
			}

			mode := dice.ModeNormal
			switch {
			case advantage && disadvantage:
				return fmt.Errorf("choose advantage or disadvantage, not both")
			case advantage:
				mode = dice.ModeAdvantage
			case disadvantage:
				mode = dice.ModeDisadvantage
			}

			return a.withSheet(cmd, nil, func(ctx context.Context, sh *sheet.Sheet) error {
				result, err := sh.Roll(ctx, sides, mode)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.LogText())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&advantage, "adv", false, "Roll with advantage")
	cmd.Flags().BoolVar(&disadvantage, "dis", false, "Roll with disadvantage")
	return cmd
}

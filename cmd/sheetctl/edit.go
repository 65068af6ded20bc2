package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet/internal/services/sheet"
	"github.com/spf13/cobra"
)

// edit runs one sheet change and prints a confirmation line
func (a *app) edit(cmd *cobra.Command, done string, fn func(ctx context.Context, sh *sheet.Sheet) error) error {
	return a.withSheet(cmd, nil, func(ctx context.Context, sh *sheet.Sheet) error {
		if err := fn(ctx, sh); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), done)
		return nil
	})
}

func intArg(args []string, i int, name string) (int, error) {
	if len(args) <= i {
		return 1, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, args[i])
	}
	return n, nil
}

func onOff(arg string) (bool, error) {
	switch arg {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

func newHPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hp",
		Short: "Change hit points",
	}

	adjust := func(use, short string, sign int) *cobra.Command {
		return &cobra.Command{
			Use:   use + " [amount]",
			Short: short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := intArg(args, 0, "amount")
				if err != nil {
					return err
				}
				return a.edit(cmd, sheet.HPLogText(sign*n), func(ctx context.Context, sh *sheet.Sheet) error {
					return sh.AdjustHP(ctx, sign*n)
				})
			},
		}
	}

	cmd.AddCommand(
		adjust("damage", "Lose hit points", -1),
		adjust("heal", "Regain hit points", 1),
		&cobra.Command{
			Use:   "max <value>",
			Short: "Set maximum hit points",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(cmd, "Max HP set", func(ctx context.Context, sh *sheet.Sheet) error {
					return sh.SetField(ctx, "combat.hp.max", args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "temp <value>",
			Short: "Set temporary hit points",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.edit(cmd, "Temp HP set", func(ctx context.Context, sh *sheet.Sheet) error {
					return sh.SetField(ctx, "combat.hp.temp", args[0])
				})
			},
		},
	)
	return cmd
}

func newHitDiceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hitdice",
		Short: "Spend or regain hit dice",
	}
	for _, c := range []struct {
		use   string
		short string
		sign  int
	}{
		{use: "spend", short: "Spend hit dice", sign: -1},
		{use: "regain", short: "Regain hit dice", sign: 1},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   c.use + " [count]",
			Short: c.short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := intArg(args, 0, "count")
				if err != nil {
					return err
				}
				return a.edit(cmd, "Hit dice updated", func(ctx context.Context, sh *sheet.Sheet) error {
					return sh.AdjustHitDice(ctx, c.sign*n)
				})
			},
		})
	}
	return cmd
}

func newUseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "use <address> [count]",
		Short:   "Spend uses of a class resource",
		Example: "  sheetctl use classResources.Barbarian.rage",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArg(args, 1, "count")
			if err != nil {
				return err
			}
			return a.edit(cmd, "Resource used", func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.AdjustCounter(ctx, args[0], -n)
			})
		},
	}
}

func newRegainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regain <address> [count]",
		Short: "Regain uses of a class resource",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := intArg(args, 1, "count")
			if err != nil {
				return err
			}
			return a.edit(cmd, "Resource regained", func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.AdjustCounter(ctx, args[0], n)
			})
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <address> <on|off>",
		Short:   "Mark a once-per-rest feature available or spent",
		Example: "  sheetctl toggle classResources.Fighter.secondWind off",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			available, err := onOff(args[1])
			if err != nil {
				return err
			}
			return a.edit(cmd, "Feature updated", func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.SetToggle(ctx, args[0], available)
			})
		},
	}
}

func newPoolCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "pool <address.max|address.remaining> <value>",
		Short:   "Set a pool's maximum or remaining points",
		Example: "  sheetctl pool classResources.Paladin.layOnHands.remaining 2",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("value must be a number, got %q", args[1])
			}
			return a.edit(cmd, "Pool updated", func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.SetPoolField(ctx, args[0], value)
			})
		},
	}
}

func newSlotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Manage spell slots",
	}

	level := func(arg string) (int, error) {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return 0, fmt.Errorf("slot level must be 1-9, got %q", arg)
		}
		return n, nil
	}

	for _, c := range []struct {
		use   string
		short string
		sign  int
	}{
		{use: "use", short: "Expend a spell slot", sign: -1},
		{use: "regain", short: "Regain a spell slot", sign: 1},
	} {
		cmd.AddCommand(&cobra.Command{
			Use:   c.use + " <level>",
			Short: c.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				lvl, err := level(args[0])
				if err != nil {
					return err
				}
				return a.edit(cmd, "Spell slots updated", func(ctx context.Context, sh *sheet.Sheet) error {
					return sh.AdjustSpellSlot(ctx, lvl, c.sign)
				})
			},
		})
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "max <level> <count>",
			Short: "Set how many slots a level has",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				lvl, err := level(args[0])
				if err != nil {
					return err
				}
				count, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("count must be a number, got %q", args[1])
				}
				return a.edit(cmd, "Spell slots updated", func(ctx context.Context, sh *sheet.Sheet) error {
					return sh.SetSpellSlotMax(ctx, lvl, count)
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Mark every spell slot unused",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.edit(cmd, "Spell slots reset", func(ctx context.Context, sh *sheet.Sheet) error {
					return sh.ResetSpellSlots(ctx)
				})
			},
		},
	)
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <address> <value>",
		Short: "Set any field of the character document",
		Long: `Set writes one field by its dotted address, the way the sheet's form inputs do.
Numbers that do not parse become 0 (1 for level and max HP) before clamping.`,
		Example: `  sheetctl set identity.name "Brakka"
  sheetctl set abilities.STR 17
  sheetctl set notes "owes the innkeeper 3gp"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, fmt.Sprintf("Set %s", args[0]), func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.SetField(ctx, args[0], args[1])
			})
		},
	}
}

func newLevelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "level <1-20>",
		Short: "Set character level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, "Level set", func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.SetField(ctx, "identity.level", args[0])
			})
		},
	}
}

func newClassCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "class <name>",
		Short: "Switch class, keeping other classes' resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, "Class set to "+args[0], func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.SetClass(ctx, shared.Class(args[0]))
			})
		},
	}
}

func newConditionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "condition <name> <on|off>",
		Short: "Apply or clear a condition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := onOff(args[1])
			if err != nil {
				return err
			}
			return a.edit(cmd, "Conditions updated", func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.SetCondition(ctx, shared.Condition(args[0]), on)
			})
		},
	}
}

func newSkillCmd(a *app) *cobra.Command {
	var proficient, expertise bool
	cmd := &cobra.Command{
		Use:   "skill <name>",
		Short: "Set skill proficiency and expertise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, "Skill updated", func(ctx context.Context, sh *sheet.Sheet) error {
				return sh.SetSkill(ctx, args[0], proficient, expertise)
			})
		},
	}
	cmd.Flags().BoolVar(&proficient, "proficient", false, "Proficient in the skill")
	cmd.Flags().BoolVar(&expertise, "expertise", false, "Expertise in the skill")
	return cmd
}

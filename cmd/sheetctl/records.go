package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/KirkDiggler/dnd-sheet/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet/internal/services/sheet"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the character sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSheet(cmd, nil, func(_ context.Context, sh *sheet.Sheet) error {
				if asJSON {
					return sh.Export(cmd.OutOrStdout())
				}
				renderSheet(cmd.OutOrStdout(), sh.Schema(), sh.Snapshot())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored document instead")
	return cmd
}

func newLogCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the action log, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSheet(cmd, nil, func(_ context.Context, sh *sheet.Sheet) error {
				renderLog(cmd.OutOrStdout(), sh.Snapshot().Log, limit)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Entries to show (0 for all)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.repo.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No characters stored")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(out, "%s\t%s\t%s %d\n", rec.Meta.ID, rec.Identity.Name, rec.Identity.Class, rec.Identity.Level)
			}
			return nil
		},
	}
}

func newNewCmd(a *app) *cobra.Command {
	var (
		class string
		name  string
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Replace the character with a fresh level 1 hero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSheet(cmd, nil, func(ctx context.Context, sh *sheet.Sheet) error {
				if err := sh.Reset(ctx); err != nil {
					return err
				}
				if class != "" {
					if err := sh.SetClass(ctx, shared.Class(class)); err != nil {
						return err
					}
				}
				if name != "" {
					if err := sh.SetField(ctx, "identity.name", name); err != nil {
						return err
					}
				}
				rec := sh.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s, a level 1 %s\n", rec.Identity.Name, rec.Identity.Class)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&class, "class", string(sheet.DefaultClass), "Starting class")
	cmd.Flags().StringVar(&name, "name", "", "Character name")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the character as JSON",
		Long: `Export writes the full character document. With no file it is written to
"<name>.json" in the current directory; "-" writes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSheet(cmd, nil, func(_ context.Context, sh *sheet.Sheet) error {
				target := sh.ExportFilename()
				if len(args) == 1 {
					target = args[0]
				}
				if target == "-" {
					return sh.Export(cmd.OutOrStdout())
				}

				f, err := os.Create(target)
				if err != nil {
					return err
				}
				if err := sh.Export(f); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", target)
				return nil
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the character with an exported document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			return a.withSheet(cmd, nil, func(ctx context.Context, sh *sheet.Sheet) error {
				if err := sh.Import(ctx, r); err != nil {
					return err
				}
				rec := sh.Snapshot()
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", describe(rec))
				return nil
			})
		},
	}
}

func describe(rec *character.Record) string {
	return fmt.Sprintf("%s (%s %d)", rec.Identity.Name, rec.Identity.Class, rec.Identity.Level)
}

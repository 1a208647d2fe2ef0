package main

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/CiaranMcAleer/medref/internal/library"
	"github.com/CiaranMcAleer/medref/internal/prompt"
)

func newSetupCmd() *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the category folders, their index files, the root index and README.md",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			opts := []library.ScaffoldOption{
				library.WithCategories(cfg.CategoryList()),
				library.WithScaffoldIndexFile(cfg.IndexFile),
				library.WithTitle(cfg.Title),
				library.WithScaffoldLogger(logger),
			}
			if !assumeYes {
				p := prompt.Stdio()
				p.Out = cmd.OutOrStdout()
				opts = append(opts, library.WithConfirmer(p))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Setting up your medical reference library...")
			s := library.NewScaffolder(afero.NewOsFs(), cfg.Root, opts...)
			if err := s.Run(cmd.Context()); err != nil {
				if errors.Is(err, library.ErrSetupDeclined) {
					fmt.Fprintln(out, "Setup cancelled.")
					return nil
				}
				return err
			}
			fmt.Fprintln(out, "Setup complete!")
			fmt.Fprintln(out, "Next: add HTML files to the category folders, then run 'medref update'.")
			return nil
		},
	}
	cmd.Flags().String("root", ".", "library root directory")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "overwrite an existing root index without asking")
	return cmd
}

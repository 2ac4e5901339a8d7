package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartridge/tictactoe-rl/internal/config"
	"github.com/cartridge/tictactoe-rl/internal/policy"
)

func generateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate FILE",
		Short: "Write an untrained policy file",
		Long: `Write a policy file covering every board, with equal weight on every free
cell. An existing file is only replaced after confirmation or with --force.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, cfg, args[0])
		},
	}

	cmd.Flags().BoolVarP(&cfg.Force, "force", "f", cfg.Force, "Overwrite without asking")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, path string) error {
	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}

	exists, err := a.store.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	if exists && !cfg.Force {
		a.renderer.Println(fmt.Sprintf("Policy file %s already exists", path))
		ok, err := a.prompter.Confirm("Overwrite?")
		if err != nil {
			return err
		}
		if !ok {
			a.renderer.Println("Quitting")
			return nil
		}
	}

	a.log.Info().Str("path", path).Msg("Saving base policy")
	return a.store.Save(cmd.Context(), path, policy.Generate())
}

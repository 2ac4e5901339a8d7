package main

import (
	"github.com/spf13/cobra"

	"github.com/cartridge/tictactoe-rl/internal/config"
)

func trainCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train FIRST_FILE SECOND_FILE",
		Short: "Train two policy files against each other",
		Long: `Let two agents play --iterations matches, rewarding the winner's moves and
penalising the loser's after every match, then save both policy files.
A frozen seat keeps playing but is neither updated nor saved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, cfg, args[0], args[1])
		},
	}

	cmd.Flags().IntVarP(&cfg.Iterations, "iterations", "n", cfg.Iterations, "How many matches to play")
	cmd.Flags().BoolVar(&cfg.FreezeFirst, "freeze-first", cfg.FreezeFirst, "Keep the first policy fixed")
	cmd.Flags().BoolVar(&cfg.FreezeSecond, "freeze-second", cfg.FreezeSecond, "Keep the second policy fixed")
	cmd.Flags().StringVar(&cfg.Chart, "chart", cfg.Chart, "Write an HTML win rate chart to this path")

	return cmd
}

func runTrain(cmd *cobra.Command, cfg *config.Config, first, second string) error {
	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	paths := [2]string{first, second}
	train := [2]bool{!cfg.FreezeFirst, !cfg.FreezeSecond}

	tables, err := a.loadTables(ctx, paths)
	if err != nil {
		return err
	}

	return a.selfPlay(ctx, paths, tables, train)
}

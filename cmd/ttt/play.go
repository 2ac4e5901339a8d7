package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartridge/tictactoe-rl/internal/config"
	"github.com/cartridge/tictactoe-rl/internal/console"
	"github.com/cartridge/tictactoe-rl/internal/game"
	"github.com/cartridge/tictactoe-rl/internal/policy"
	"github.com/cartridge/tictactoe-rl/internal/trainer"
)

const cellGuide = `Cells are numbered like a keypad:

 7 | 8 | 9
---------
 4 | 5 | 6
---------
 1 | 2 | 3`

func playCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match, seats without a policy file are played by a human",
		Long: `Play tic-tac-toe. X moves first. A seat given a policy file is played by an
agent, any other seat by a human at the keyboard.

With two policy files the agents play --iterations matches against each
other and the tables selected with --train-first/--train-second are updated
and saved. Otherwise a single match is played and a flagged agent learns
from its outcome.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.First, "first", cfg.First, "Policy file for X, the first player (human when empty)")
	cmd.Flags().StringVar(&cfg.Second, "second", cfg.Second, "Policy file for O, the second player (human when empty)")
	cmd.Flags().BoolVar(&cfg.TrainFirst, "train-first", cfg.TrainFirst, "Update the first policy file from match outcomes")
	cmd.Flags().BoolVar(&cfg.TrainSecond, "train-second", cfg.TrainSecond, "Update the second policy file from match outcomes")
	cmd.Flags().IntVarP(&cfg.Iterations, "iterations", "n", cfg.Iterations, "Matches to play when both seats are agents")

	return cmd
}

func runPlay(cmd *cobra.Command, cfg *config.Config) error {
	a, err := newApp(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	paths := [2]string{cfg.First, cfg.Second}
	train := [2]bool{cfg.TrainFirst, cfg.TrainSecond}

	tables, err := a.loadTables(ctx, paths)
	if err != nil {
		return err
	}

	if tables[0] != nil && tables[1] != nil {
		a.log.Info().Msg("Playing computer against computer")
		return a.selfPlay(ctx, paths, tables, train)
	}

	return a.interactive(ctx, paths, tables, train)
}

// interactive plays one match with at least one human seat.
func (a *app) interactive(ctx context.Context, paths [2]string, tables [2]*policy.Table, train [2]bool) error {
	var movers [2]game.Mover
	for seat := range movers {
		if tables[seat] != nil {
			movers[seat] = game.NewAgent(tables[seat], a.selector)
		} else {
			movers[seat] = game.NewHuman(a.prompter)
		}
	}

	a.log.Info().
		Str("first", movers[0].Kind().String()).
		Str("second", movers[1].Kind().String()).
		Msg("Starting match")
	a.renderer.Println(cellGuide)

	res, err := game.NewEngine(a.renderer).Play(ctx, movers[0], movers[1])
	if err != nil {
		return err
	}

	a.renderer.Println(resultMessage(res, movers))

	opts := a.cfg.TrainerOptions()
	trainer.ApplyOutcome(res, tables, train, opts.Reward, opts.Penalty)
	return a.saveTrained(ctx, paths, tables, train)
}

func resultMessage(res *game.Result, movers [2]game.Mover) string {
	winner := res.Winner()
	marker := res.Outcome.Winner()

	note := ""
	if _, ok := res.Final.WinningLine(marker); !ok {
		note = " (a full board goes to the second player)"
	}

	w, l := movers[winner].Kind(), movers[1-winner].Kind()
	switch {
	case w == game.KindHuman && l == game.KindAgent:
		return "You win!" + note
	case w == game.KindAgent && l == game.KindHuman:
		return "Computer wins!" + note
	}
	return fmt.Sprintf("%s wins!%s", console.Glyph(marker), note)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cartridge/tictactoe-rl/internal/config"
)

// rootCommand builds the command tree around one shared config.
func rootCommand() *cobra.Command {
	cfg := config.Default()
	var configFile string

	cmd := &cobra.Command{
		Use:   "ttt",
		Short: "Play tic-tac-toe against a reinforcement learning agent",
		Long: `Play tic-tac-toe against a tabular reinforcement learning agent, or let two
agents play each other to train their policy files.

Policy files hold one weight per cell for every board. Agents sample their
moves from those weights; winning moves gain weight and losing moves lose it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(cfg, cmd.Flags(), configFile); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return nil
		},
	}

	// Output
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Don't print boards while playing or training")
	cmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable coloured output")

	// Learning
	cmd.PersistentFlags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for move sampling (0 for time based)")
	cmd.PersistentFlags().IntVar(&cfg.Reward, "reward", cfg.Reward, "Weight added to every move of the winner")
	cmd.PersistentFlags().IntVar(&cfg.Penalty, "penalty", cfg.Penalty, "Weight added to every move of the loser")

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Optional YAML config file")

	cmd.AddCommand(
		generateCommand(cfg),
		playCommand(cfg),
		trainCommand(cfg),
	)

	return cmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "Interrupt received, stopping...")
		cancel()
	}()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

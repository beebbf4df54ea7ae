package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/polyprec/internal/infrastructure/config"
	"github.com/GriffinCanCode/polyprec/internal/infrastructure/logging"
	"github.com/GriffinCanCode/polyprec/internal/orthopoly"
)

// app holds state shared by all subcommands
type app struct {
	verbose bool
	cfg     *config.Config
	logger  *logging.Logger
}

func (a *app) evaluator() *orthopoly.Evaluator {
	return a.cfg.Evaluator(orthopoly.WithLogger(a.logger.Named("orthopoly")))
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "polyeval",
		Short:         "Correctly rounded Legendre and Hermite polynomials",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.LoadOrDefault()
			if a.verbose {
				a.logger = logging.NewFromLevel("debug", true)
			} else {
				a.logger = logging.NewFromLevel("warn", false)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		newEvalCmd(a, orthopoly.FamilyLegendre),
		newEvalCmd(a, orthopoly.FamilyHermite),
		newBatchCmd(a),
		newVersionCmd(),
	)
	return root
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

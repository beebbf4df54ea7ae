package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/polyprec/internal/batch"
	"github.com/GriffinCanCode/polyprec/internal/client"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		workers  int
		out      string
		compress bool
		remote   string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate a YAML, TOML or JSON job file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := batch.Load(args[0])
			if err != nil {
				return err
			}

			var backend batch.Backend = batch.Local{Evaluator: a.evaluator()}
			if remote != "" {
				c := client.New(client.DefaultConfig(remote), a.logger.Named("client"))
				defer c.Close()
				backend = batch.Remote{Client: c}
			}
			if workers <= 0 {
				workers = a.cfg.Eval.Workers
			}

			runner := batch.NewRunner(backend,
				batch.WithWorkers(workers),
				batch.WithDefaultPrecision(a.cfg.Eval.DefaultPrecision),
				batch.WithLogger(a.logger.Named("batch")),
			)
			rep, err := runner.Run(cmd.Context(), jobs)
			if err != nil {
				return err
			}

			if out == "" {
				err = batch.Write(cmd.OutOrStdout(), rep, compress)
			} else {
				err = batch.WriteFile(out, rep, compress)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d jobs, %d failed\n", rep.RunID, len(rep.Results), rep.Failed)
			if strict && rep.Failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", rep.Failed, len(rep.Results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent evaluations (default EVAL_WORKERS)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&compress, "gzip", false, "gzip the report")
	cmd.Flags().StringVar(&remote, "remote", "", "evaluate on a polyprec server at this base URL")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any job fails")
	return cmd
}

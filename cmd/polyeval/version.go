package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	httpapi "github.com/GriffinCanCode/polyprec/internal/api/http"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "polyeval %s (%s)\n", httpapi.Version, runtime.Version())
			return err
		},
	}
}

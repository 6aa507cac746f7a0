package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stigoleg/vidle/internal/config"
)

const appVersion = "0.4.0"

func main() {
	cmd := config.NewCommand(appVersion, func(cmd *cobra.Command, opts config.Options) error {
		if opts.Headless {
			return runHeadless(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return runTUI(opts)
	})

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, config.FormatError(err))
		os.Exit(1)
	}
}

// countryctl works with country translation tables from the command line
//
// Usage:
//
//	countryctl list --locale cz --priority ES,CZ   # print a select list
//	countryctl list --locale cz --html             # print a <select> tag
//	countryctl load --target redis                 # push locale data into Redis
//	countryctl locales                             # list available locales
package main

import (
	"os"

	"github.com/evyataryagoni/countryselect/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "countryctl",
		Short:        "Localized country select lists",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(listCmd(cfg))
	rootCmd.AddCommand(localesCmd())
	rootCmd.AddCommand(loadCmd(cfg))
	return rootCmd
}

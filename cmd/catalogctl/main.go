// catalogctl exercises the outbound catalog adapters from the command line:
//
//	catalogctl products list --integration shopify --limit 5
//	catalogctl products get 8616920351034 --integration shopify
//
// Credentials come from the same environment variables as the API server.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.WarnLevel)

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Query product catalogs through the platform adapters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("integration", "shopify", "integration to use (shopify, woocommerce)")
	root.PersistentFlags().String("client", "", "client identifier (defaults to the configured one)")

	root.AddCommand(newProductsCommand(logger))

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

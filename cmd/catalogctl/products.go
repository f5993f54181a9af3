package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"catalog-connect-layer/internal/application"
	"catalog-connect-layer/internal/config"
	"catalog-connect-layer/internal/domain"
	shopifyinfra "catalog-connect-layer/internal/infrastructure/shopify"
	woocommerceinfra "catalog-connect-layer/internal/infrastructure/woocommerce"
	"catalog-connect-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newProductsCommand(logger zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List or fetch products from a store's catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := resolveEngine(cmd, logger)
			if err != nil {
				return err
			}
			var limit *int
			if n, err := cmd.Flags().GetInt("limit"); err == nil && cmd.Flags().Changed("limit") {
				limit = &n
			}
			products, err := engine.ListProducts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printJSON(products)
		},
	}
	list.Flags().Int("limit", 0, "maximum number of products to fetch")

	get := &cobra.Command{
		Use:   "get <product-id>",
		Short: "Fetch one product by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], err)
			}
			engine, err := resolveEngine(cmd, logger)
			if err != nil {
				return err
			}
			product, err := engine.GetProduct(cmd.Context(), productID)
			if err != nil {
				return err
			}
			return printJSON(product)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// resolveEngine builds the adapter named by --integration from the
// environment, using the same factory wiring as the API server.
func resolveEngine(cmd *cobra.Command, logger zerolog.Logger) (ports.CatalogEngine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	rateLimiter := shopifyinfra.NewRateLimiter(logger)
	shopifyClient := shopifyinfra.NewClient(cfg.UpstreamTimeout, rateLimiter, logger)
	wooClient := woocommerceinfra.NewClient(cfg.UpstreamTimeout, logger)

	factory := application.NewEngineFactory(config.NewCredentialStore(cfg), logger)
	factory.Register(domain.IntegrationShopify, func(clientID string, creds domain.ClientCredentials) (ports.CatalogEngine, error) {
		return shopifyinfra.NewEngine(clientID, creds, shopifyClient, logger)
	})
	factory.Register(domain.IntegrationWooCommerce, func(clientID string, creds domain.ClientCredentials) (ports.CatalogEngine, error) {
		return woocommerceinfra.NewEngine(clientID, creds, wooClient, logger)
	})
	if err := factory.Validate(); err != nil {
		return nil, err
	}

	integration, _ := cmd.Flags().GetString("integration")
	clientID, _ := cmd.Flags().GetString("client")
	if clientID == "" {
		switch integration {
		case domain.IntegrationWooCommerce.String():
			clientID = cfg.WooCommerce.ClientID
		default:
			clientID = cfg.Shopify.ClientID
		}
	}

	return factory.GetEngine(integration, clientID)
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lgaravaglia/contaflow/internal/cli"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Interactive invoice reconciliation session",
		Long: `Open the interactive menu: load the AFIP and marketplace exports,
reconcile provinces by tax ID, browse and filter the invoices, and export
the result as CSV.

Invoices with no marketplace match get the configured default province
(invoices.default_region, "Córdoba" unless overridden). With
--include-marketplace, the marketplace sales themselves join the invoice
list, carrying their own date, amount and province.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session := cli.NewSession(os.Stdin, os.Stdout, cli.SessionOptions{
				DefaultRegion:      viper.GetString("invoices.default_region"),
				IncludeMarketplace: viper.GetBool("invoices.include_marketplace"),
			})
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().Bool("include-marketplace", false, "Also load marketplace sales as invoices")
	_ = viper.BindPFlag("invoices.include_marketplace", cmd.Flags().Lookup("include-marketplace"))

	return cmd
}

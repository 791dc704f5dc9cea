package cmd

import (
	"lever/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// command for creating the pool reserve rows of every registered market
var reserveCmd = &cobra.Command{
	Use:   "reserve",
	Short: "init pool reserves for registered markets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		reserveStore := provideReserveStore(database)
		for _, market := range core.AllMarkets() {
			reserve := &core.Reserve{
				Asset:              market.Asset,
				Chain:              market.Chain,
				TotalSupplied:      decimal.Zero,
				TotalBorrowed:      decimal.Zero,
				AvailableLiquidity: decimal.Zero,
			}

			if err := reserveStore.Save(ctx, database, reserve); err != nil {
				cmd.PrintErrln("save reserve error:", err)
				return
			}

			cmd.Println("reserve ready:", market.Asset, market.Chain)
		}
	},
}

func init() {
	rootCmd.AddCommand(reserveCmd)
}

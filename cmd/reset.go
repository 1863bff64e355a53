package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every game and player, then reseed the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return eris.New("reset deletes all league data; pass --yes to confirm")
		}

		svc, st, err := initLeague(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		added, err := svc.ResetAndSeed(cmd.Context(), cfg.League.Roster)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "league reset, %d players seeded\n", added)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm deletion of all league data")
	rootCmd.AddCommand(resetCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Manage league players",
}

var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := initLeague(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		players, err := svc.Players(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, p := range players {
			fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Name)
		}
		return nil
	},
}

var playersSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the configured roster when the league has no players",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := initLeague(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		added, err := svc.SeedIfEmpty(cmd.Context(), cfg.League.Roster)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %d players\n", added)
		return nil
	},
}

func init() {
	playersCmd.AddCommand(playersListCmd, playersSeedCmd)
	rootCmd.AddCommand(playersCmd)
}

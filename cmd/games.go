package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Inspect credited games",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credited games, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := initLeague(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		games, err := svc.Games(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tPLAYER\tGAME\tHOURS\tPOINTS\tCATEGORY")
		for _, g := range games {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%d\t%s\n",
				g.CreatedAt.Format("2006-01-02"), g.PlayerID, g.GameName, g.Hours, g.Points, g.Category)
		}
		return tw.Flush()
	},
}

func init() {
	gamesCmd.AddCommand(gamesListCmd)
	rootCmd.AddCommand(gamesCmd)
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/platleague/internal/export"
	"github.com/sells-group/platleague/internal/model"
)

var leaderboardXLSX string

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show league standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, st, err := initLeague(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		var (
			board []model.LeaderboardEntry
			games []model.GameRecord
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			board, err = svc.Leaderboard(gctx)
			return err
		})
		if leaderboardXLSX != "" {
			g.Go(func() error {
				var err error
				games, err = svc.Games(gctx)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RANK\tPLAYER\tPOINTS\tGAMES")
		for i, e := range board {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", i+1, e.Name, e.TotalPoints, e.Games)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if leaderboardXLSX != "" {
			if err := export.WriteXLSX(leaderboardXLSX, board, games); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", leaderboardXLSX)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardXLSX, "xlsx", "", "also export standings and history to this .xlsx file")
	rootCmd.AddCommand(leaderboardCmd)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/platleague/internal/model"
)

var searchOutput string

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Resolve a game title or HowLongToBeat URL to completion times",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("search"); err != nil {
			return err
		}
		query := strings.Join(args, " ")
		games := initResolver(cfg).Resolve(cmd.Context(), query)
		return writeGames(cmd.OutOrStdout(), searchOutput, games)
	},
}

// searchResult is the rendered form of a resolved game.
type searchResult struct {
	model.ResolvedGame `yaml:",inline"`
	Points             int    `json:"points" yaml:"points"`
	Category           string `json:"category" yaml:"category"`
}

func writeGames(w io.Writer, format string, games []model.ResolvedGame) error {
	out := make([]searchResult, 0, len(games))
	for _, g := range games {
		points, tier := model.Classify(g.Hours)
		out = append(out, searchResult{ResolvedGame: g, Points: points, Category: tier.Label()})
	}

	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(out), "search: encode json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return eris.Wrap(err, "search: encode yaml")
		}
		return eris.Wrap(enc.Close(), "search: encode yaml")
	case "table":
		if len(out) == 0 {
			_, err := fmt.Fprintln(w, "no results")
			return err
		}
		for _, r := range out {
			if _, err := fmt.Fprintf(w, "%-40s %7.1fh  %d pts  %-9s  %s\n",
				r.GameName, r.Hours, r.Points, r.Category, r.URL); err != nil {
				return err
			}
		}
		return nil
	default:
		return eris.Errorf("search: unknown output format %q", format)
	}
}

func init() {
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "json", "output format: json, yaml or table")
	rootCmd.AddCommand(searchCmd)
}

package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/platleague/internal/model"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <hours>",
	Short: "Show the points and tier a completion time earns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Wrapf(err, "classify: parse hours %q", args[0])
		}
		if err := model.ValidateHours(hours); err != nil {
			return err
		}
		points, tier := model.Classify(hours)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%g hours: %d points (%s)\n", hours, points, tier.Label())
		return err
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

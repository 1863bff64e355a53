package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/platleague/internal/mcptool"
)

// version is set at build time.
var version = "dev"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve game search and scoring tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("search"); err != nil {
			return err
		}
		ctx := cmd.Context()

		svc, st, err := initLeague(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		srv := mcp.NewServer(&mcp.Implementation{Name: "platleague", Version: version}, nil)
		mcptool.Register(srv, initResolver(cfg), svc)

		zap.L().Info("mcp server listening on stdio")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			return eris.Wrap(err, "mcp: run")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

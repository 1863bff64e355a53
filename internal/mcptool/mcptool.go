// Package mcptool exposes game resolution and scoring as MCP tools.
package mcptool

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/platleague/internal/model"
)

// Tool names.
const (
	ToolSearchGame  = "platleague_search_game"
	ToolClassify    = "platleague_classify"
	ToolLeaderboard = "platleague_leaderboard"
)

// Searcher resolves a free-text query into candidate games.
type Searcher interface {
	Resolve(ctx context.Context, query string) []model.ResolvedGame
}

// Leaderboard returns the current standings.
type Leaderboard interface {
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
}

// Register adds the tools to srv. board may be nil to omit the leaderboard
// tool.
func Register(srv *mcp.Server, searcher Searcher, board Leaderboard) {
	registerSearch(srv, searcher)
	registerClassify(srv)
	if board != nil {
		registerLeaderboard(srv, board)
	}
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

type handler func(ctx context.Context, args json.RawMessage) (any, error)

// addTool wraps h so decode and domain errors become tool errors and
// results are returned as JSON text.
func addTool(srv *mcp.Server, tool *mcp.Tool, h handler) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := h(ctx, req.Params.Arguments)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(eris.Wrap(err, "marshal"))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

func decode(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return eris.Wrap(err, "invalid arguments")
	}
	return nil
}

// --- search ---

type searchReq struct {
	Query string `json:"query"`
}

func registerSearch(srv *mcp.Server, searcher Searcher) {
	tool := &mcp.Tool{
		Name:        ToolSearchGame,
		Description: "Find a game's completion time on HowLongToBeat. Accepts a title or a game page URL.",
		InputSchema: inputSchema(map[string]any{
			"query": map[string]any{"type": "string", "description": "Game title or howlongtobeat.com/game/ URL"},
		}, []string{"query"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r searchReq
		if err := decode(args, &r); err != nil {
			return nil, err
		}
		q := strings.TrimSpace(r.Query)
		if q == "" {
			return nil, eris.New("query is required")
		}
		return map[string]any{"results": searcher.Resolve(ctx, q)}, nil
	})
}

// --- classify ---

type classifyReq struct {
	Hours float64 `json:"hours"`
}

type classifyResp struct {
	Hours    float64 `json:"hours"`
	Points   int     `json:"points"`
	Tier     string  `json:"tier"`
	Category string  `json:"category"`
}

func registerClassify(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolClassify,
		Description: "Score a completion time in hours: 0 points under 5h, then 1 to 4 by difficulty tier.",
		InputSchema: inputSchema(map[string]any{
			"hours": map[string]any{"type": "number", "description": "Completion time in hours"},
		}, []string{"hours"}),
	}

	addTool(srv, tool, func(_ context.Context, args json.RawMessage) (any, error) {
		var r classifyReq
		if err := decode(args, &r); err != nil {
			return nil, err
		}
		if err := model.ValidateHours(r.Hours); err != nil {
			return nil, err
		}
		points, tier := model.Classify(r.Hours)
		return classifyResp{
			Hours:    r.Hours,
			Points:   points,
			Tier:     string(tier),
			Category: tier.Label(),
		}, nil
	})
}

// --- leaderboard ---

func registerLeaderboard(srv *mcp.Server, board Leaderboard) {
	tool := &mcp.Tool{
		Name:        ToolLeaderboard,
		Description: "Current league standings, highest points first.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	addTool(srv, tool, func(ctx context.Context, _ json.RawMessage) (any, error) {
		entries, err := board.Leaderboard(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"leaderboard": entries}, nil
	})
}

package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/platleague/internal/model"
)

var testImpl = &mcp.Implementation{Name: "platleague-test", Version: "0.1.0"}

type searchFunc func(ctx context.Context, q string) []model.ResolvedGame

func (f searchFunc) Resolve(ctx context.Context, q string) []model.ResolvedGame { return f(ctx, q) }

type boardFunc func(ctx context.Context) ([]model.LeaderboardEntry, error)

func (f boardFunc) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) { return f(ctx) }

func session(t *testing.T, s Searcher, b Leaderboard) *mcp.ClientSession {
	t.Helper()
	srv := mcp.NewServer(testImpl, nil)
	Register(srv, s, b)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testImpl, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() }) //nolint:errcheck
	return cs
}

func call(t *testing.T, cs *mcp.ClientSession, name string, args any) (*mcp.CallToolResult, string) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	return res, tc.Text
}

func TestSearchGame(t *testing.T) {
	var got string
	cs := session(t, searchFunc(func(_ context.Context, q string) []model.ResolvedGame {
		got = q
		return []model.ResolvedGame{{GameName: "Hades", Hours: 22, ImageURL: "img", URL: "u"}}
	}), nil)

	res, text := call(t, cs, ToolSearchGame, map[string]any{"query": "  hades "})
	require.False(t, res.IsError)
	assert.Equal(t, "hades", got)

	var resp struct {
		Results []model.ResolvedGame `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Hades", resp.Results[0].GameName)
}

func TestSearchGame_EmptyQuery(t *testing.T) {
	cs := session(t, searchFunc(func(context.Context, string) []model.ResolvedGame {
		t.Fatal("resolver must not run")
		return nil
	}), nil)

	res, text := call(t, cs, ToolSearchGame, map[string]any{"query": " "})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "query is required")
}

func TestClassify(t *testing.T) {
	cs := session(t, searchFunc(nil), nil)

	tests := []struct {
		hours    float64
		points   int
		category string
	}{
		{4.9, 0, "Invalid"},
		{5, 1, "Easy"},
		{15, 2, "Medium"},
		{80, 3, "Hard"},
		{81, 4, "Very Hard"},
	}
	for _, tt := range tests {
		res, text := call(t, cs, ToolClassify, map[string]any{"hours": tt.hours})
		require.False(t, res.IsError)

		var resp classifyResp
		require.NoError(t, json.Unmarshal([]byte(text), &resp))
		assert.Equal(t, tt.points, resp.Points, "hours %v", tt.hours)
		assert.Equal(t, tt.category, resp.Category, "hours %v", tt.hours)
	}
}

func TestClassify_Negative(t *testing.T) {
	cs := session(t, searchFunc(nil), nil)

	res, text := call(t, cs, ToolClassify, map[string]any{"hours": -1})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "hours")
}

func TestLeaderboard(t *testing.T) {
	cs := session(t, searchFunc(nil), boardFunc(func(context.Context) ([]model.LeaderboardEntry, error) {
		return []model.LeaderboardEntry{{ID: "1", Name: "Jack", TotalPoints: 4, Games: 1}}, nil
	}))

	res, text := call(t, cs, ToolLeaderboard, map[string]any{})
	require.False(t, res.IsError)
	assert.Contains(t, text, `"totalPoints":4`)
}

func TestLeaderboard_Error(t *testing.T) {
	cs := session(t, searchFunc(nil), boardFunc(func(context.Context) ([]model.LeaderboardEntry, error) {
		return nil, errors.New("db down")
	}))

	res, text := call(t, cs, ToolLeaderboard, map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "db down")
}

func TestLeaderboard_OmittedWithoutBoard(t *testing.T) {
	cs := session(t, searchFunc(nil), nil)

	res, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{ToolSearchGame, ToolClassify}, names)
}

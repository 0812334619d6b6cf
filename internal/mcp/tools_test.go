package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
)

const testCSV = `name,id,desc,atk,def,level,archetype,type
Dark Magician,46986414,The ultimate wizard in terms of attack and defense.,2500,2100,7,Dark Magician,Normal Monster
Pot of Greed,55144522,Draw 2 cards.,,,,,Spell Card
Kuriboh,40640057,"During damage calculation, discard this card to take no damage.",300,200,1,Kuriboh,Effect Monster
Sheep Token,73915052,This card can be used as a Tribute.,0,0,1,,Token
`

const testScenarios = `scenarios:
  - name: Wizard summon
    hand: [{name: Dark Magician}]
    field: [{name: Kuriboh}, {name: Sheep Token}]
`

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	cat, err := catalog.LoadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScenarios), 0o644))
	return NewTools(advisor.New(cat, engine.New()), path)
}

func callTool(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err, "tool errors are results, never transport errors")
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestRecommendPlay(t *testing.T) {
	tools := newTestTools(t)

	res, text := callTool(t, tools.handleRecommendPlay, map[string]any{
		"hand":  "Dark Magician; pot of greed ;; Unknown Card",
		"field": "Kuriboh;Sheep Token",
	})
	require.False(t, res.IsError)

	var resp RecommendResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.NotEmpty(t, resp.RunID)
	require.True(t, resp.CanContinue)
	require.Len(t, resp.Steps, 3)
	require.Equal(t, "Dark Magician", resp.Steps[0].PlayedCard)
	require.Equal(t, "attack", resp.Steps[0].Position)
	require.Equal(t, "Pot of Greed", resp.Steps[1].PlayedCard)
	require.Equal(t, engine.MessageHandEmpty, resp.Steps[2].Message)
	require.NotEmpty(t, resp.Trace)
	require.Contains(t, resp.Trace[len(resp.Trace)-1], engine.MessageHandEmpty)
}

func TestRecommendPlayErrors(t *testing.T) {
	tools := newTestTools(t)

	res, text := callTool(t, tools.handleRecommendPlay, map[string]any{"hand": "Nothing Real"})
	require.True(t, res.IsError)
	require.Contains(t, text, "Initial hand is empty or invalid")

	res, text = callTool(t, tools.handleRecommendPlay, map[string]any{"hand": "Pot of Greed", "mode": "learned"})
	require.True(t, res.IsError)
	require.Contains(t, text, "unknown scoring mode")
}

func TestSearchAndGetCard(t *testing.T) {
	tools := newTestTools(t)

	_, text := callTool(t, tools.handleSearchCards, map[string]any{"query": "o"})
	var search SearchResponse
	require.NoError(t, json.Unmarshal([]byte(text), &search))
	require.Equal(t, 3, search.Count, "Pot of Greed, Kuriboh, Sheep Token")

	res, text := callTool(t, tools.handleGetCard, map[string]any{"name": "dark magician"})
	require.False(t, res.IsError)
	var card CardView
	require.NoError(t, json.Unmarshal([]byte(text), &card))
	require.Equal(t, "Monster", card.Type)
	require.Equal(t, 2, card.Tributes)

	res, _ = callTool(t, tools.handleGetCard, map[string]any{"name": "Blue-Eyes"})
	require.True(t, res.IsError)
}

func TestScenarioTools(t *testing.T) {
	tools := newTestTools(t)

	_, text := callTool(t, tools.handleListScenarios, nil)
	var views []ScenarioView
	require.NoError(t, json.Unmarshal([]byte(text), &views))
	require.Len(t, views, 1)
	require.Equal(t, "Wizard summon", views[0].Name)
	require.Equal(t, []string{"Kuriboh", "Sheep Token"}, views[0].Field)

	res, text := callTool(t, tools.handleRunScenario, map[string]any{"number": float64(1)})
	require.False(t, res.IsError)
	var resp RecommendResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Equal(t, "Dark Magician", resp.Steps[0].PlayedCard)

	res, _ = callTool(t, tools.handleRunScenario, map[string]any{"number": float64(2)})
	require.True(t, res.IsError)
	res, _ = callTool(t, tools.handleRunScenario, map[string]any{})
	require.True(t, res.IsError)
}

func TestSplitNames(t *testing.T) {
	require.Equal(t, []string{"A, the First", "B"}, splitNames(" A, the First ;B; ;"))
	require.Nil(t, splitNames(""))
}

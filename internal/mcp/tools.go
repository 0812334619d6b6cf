package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// Tools serves advisor requests as MCP tools. Every call is an independent
// run, so handlers may execute concurrently.
type Tools struct {
	advisor       *advisor.Service
	scenariosFile string
}

func NewTools(svc *advisor.Service, scenariosFile string) *Tools {
	return &Tools{advisor: svc, scenariosFile: scenariosFile}
}

// RegisterTools adds all advisor tools to the MCP server.
func (t *Tools) RegisterTools(s *server.MCPServer) {
	s.AddTool(recommendPlayTool(), t.handleRecommendPlay)
	s.AddTool(searchCardsTool(), t.handleSearchCards)
	s.AddTool(getCardTool(), t.handleGetCard)
	s.AddTool(listScenariosTool(), t.handleListScenarios)
	s.AddTool(runScenarioTool(), t.handleRunScenario)
}

// --- Tool definitions ---

func recommendPlayTool() mcp.Tool {
	return mcp.NewTool("recommend_play",
		mcp.WithDescription("Recommend, turn by turn, which cards to play from a hand. Returns the move log "+
			"(played card, id, type, NA value, position) and whether a follow-up call is meaningful. "+
			"Unknown card names are ignored."),
		mcp.WithString("hand", mcp.Required(), mcp.Description("Semicolon-separated card names in hand (e.g. 'Pot of Greed; Dark Magician')")),
		mcp.WithString("field", mcp.Description("Semicolon-separated card names already on your field, used for tributes")),
		mcp.WithString("enemy", mcp.Description("Semicolon-separated card names on the opponent's field")),
		mcp.WithString("mode", mcp.Description("Scoring mode: pure, enemy or feature_learning (default: server setting)")),
	)
}

func searchCardsTool() mcp.Tool {
	return mcp.NewTool("search_cards",
		mcp.WithDescription("List card names containing the query, ignoring case. An empty query lists every card."),
		mcp.WithString("query", mcp.Description("Substring to look for")),
	)
}

func getCardTool() mcp.Tool {
	return mcp.NewTool("get_card",
		mcp.WithDescription("Get the full record of one card: type, stats, archetype, effect points and NA."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Card name, case-insensitive")),
	)
}

func listScenariosTool() mcp.Tool {
	return mcp.NewTool("list_scenarios",
		mcp.WithDescription("List the saved board scenarios. Read-only."),
	)
}

func runScenarioTool() mcp.Tool {
	return mcp.NewTool("run_scenario",
		mcp.WithDescription("Run the recommender on a saved scenario."),
		mcp.WithNumber("number", mcp.Required(), mcp.Description("Scenario number (1-indexed from list_scenarios)")),
	)
}

// --- Tool handlers ---

func (t *Tools) handleRecommendPlay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := advisor.Request{
		InitialHand: splitNames(request.GetString("hand", "")),
		UserField:   splitNames(request.GetString("field", "")),
		EnemyCards:  splitNames(request.GetString("enemy", "")),
		Mode:        request.GetString("mode", ""),
	}
	return t.recommend(ctx, req)
}

func (t *Tools) recommend(ctx context.Context, req advisor.Request) (*mcp.CallToolResult, error) {
	trace := log.NewMemoryLogger()
	res, err := t.advisor.Stream(ctx, req, trace)
	switch {
	case errors.Is(err, advisor.ErrEmptyHand):
		return mcp.NewToolResultError("Initial hand is empty or invalid. Use search_cards to find exact card names."), nil
	case errors.Is(err, engine.ErrUnknownMode):
		return mcp.NewToolResultErrorf("%v. Use pure, enemy or feature_learning.", err), nil
	case err != nil:
		return mcp.NewToolResultErrorf("Unexpected error: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(newRecommendResponse(res, trace.Events()))), nil
}

func (t *Tools) handleSearchCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := t.advisor.Catalog().Search(request.GetString("query", ""))
	return mcp.NewToolResultText(respondJSON(&SearchResponse{Names: names, Count: len(names)})), nil
}

func (t *Tools) handleGetCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	card, ok := t.advisor.Catalog().Lookup(name)
	if !ok {
		return mcp.NewToolResultErrorf("Card %q not found. Use search_cards to find exact card names.", name), nil
	}
	return mcp.NewToolResultText(respondJSON(newCardView(card))), nil
}

func (t *Tools) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenarios, err := advisor.ParseScenarioFile(t.scenariosFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to read scenarios: %v", err), nil
	}
	views := []ScenarioView{}
	for i, sc := range scenarios {
		views = append(views, newScenarioView(i+1, sc))
	}
	return mcp.NewToolResultText(respondJSON(views)), nil
}

func (t *Tools) handleRunScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	number := request.GetInt("number", 0)
	if number < 1 {
		return mcp.NewToolResultError("number must be >= 1"), nil
	}
	sc, err := advisor.ScenarioByNumber(t.scenariosFile, number)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load scenario: %v", err), nil
	}
	return t.recommend(ctx, sc.Request())
}

// splitNames splits a semicolon-separated list, dropping blanks.
func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ";") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

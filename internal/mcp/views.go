package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/peterkuimelis/tcgadvisor/internal/advisor"
	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

// RecommendResponse is the JSON envelope returned by the recommend tools.
type RecommendResponse struct {
	RunID       string        `json:"run_id"`
	Steps       []engine.Step `json:"step_log"`
	CanContinue bool          `json:"can_continue"`
	Trace       []string      `json:"trace"`
}

func newRecommendResponse(res engine.Result, events []log.Event) *RecommendResponse {
	resp := &RecommendResponse{
		RunID:       res.RunID,
		Steps:       res.Steps,
		CanContinue: res.CanContinue,
		Trace:       []string{},
	}
	// Only decisions; expansion noise stays out of the model's context
	for _, e := range events {
		switch e.Type {
		case log.EventRoundStart, log.EventSelect, log.EventCommit, log.EventTerminal:
			resp.Trace = append(resp.Trace, log.FormatEvent(e))
		}
	}
	return resp
}

// SearchResponse lists matching card names.
type SearchResponse struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

// CardView is a card as presented in the tool response JSON.
type CardView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Archetype    string  `json:"archetype,omitempty"`
	Description  string  `json:"description,omitempty"`
	ATK          int     `json:"atk,omitempty"`
	DEF          int     `json:"def,omitempty"`
	Level        int     `json:"level,omitempty"`
	Tributes     int     `json:"tributes,omitempty"`
	EffectPoints int     `json:"effect_points"`
	NA           float64 `json:"na"`
}

func newCardView(c *catalog.Card) *CardView {
	return &CardView{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Category.String(),
		Archetype:    c.Archetype,
		Description:  c.Description,
		ATK:          c.ATK,
		DEF:          c.DEF,
		Level:        c.Level,
		Tributes:     c.TributesRequired(),
		EffectPoints: c.EffectPoints,
		NA:           c.NA,
	}
}

// ScenarioView is a saved scenario with its cards flattened.
type ScenarioView struct {
	Number int      `json:"number"`
	Name   string   `json:"name"`
	Mode   string   `json:"mode,omitempty"`
	Hand   []string `json:"hand"`
	Field  []string `json:"field,omitempty"`
	Enemy  []string `json:"enemy,omitempty"`
}

func newScenarioView(number int, sc advisor.Scenario) ScenarioView {
	req := sc.Request()
	return ScenarioView{
		Number: number,
		Name:   sc.Name,
		Mode:   sc.Mode,
		Hand:   req.InitialHand,
		Field:  req.UserField,
		Enemy:  req.EnemyCards,
	}
}

func respondJSON(resp any) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

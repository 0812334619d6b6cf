package advisor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/tcgadvisor/internal/catalog"
	"github.com/peterkuimelis/tcgadvisor/internal/config"
	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

const testCSV = `name,id,desc,atk,def,level,archetype,type
Blue-Eyes White Dragon,89631139,This legendary dragon is a powerful engine of destruction.,3000,2500,8,Blue-Eyes,Normal Monster
Pot of Greed,55144522,Draw 2 cards.,,,,,Spell Card
Kuriboh,40640057,"During damage calculation, discard this card to take no damage.",300,200,1,Kuriboh,Effect Monster
Dark Magician,46986414,The ultimate wizard in terms of attack and defense.,2500,2100,7,Dark Magician,Normal Monster
Mirror Force,44095762,Destroy all your opponent's Attack Position monsters.,,,,,Trap Card
`

const testScenarios = `scenarios:
  - name: Dragon rush
    hand:
      - name: Blue-Eyes White Dragon
      - name: Pot of Greed
    field:
      - name: Kuriboh
        count: 2
  - name: Facing a wizard
    mode: enemy
    hand:
      - name: Mirror Force
    enemy:
      - name: Dark Magician
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	cat, err := catalog.LoadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	return New(cat, engine.New())
}

func writeScenarios(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScenarios), 0o644))
	return path
}

func TestResolve(t *testing.T) {
	s := newTestService(t)

	t.Run("unknown names are dropped", func(t *testing.T) {
		in, err := s.Resolve(Request{
			InitialHand: []string{"pot of greed", "Not A Card"},
			UserField:   []string{"KURIBOH", "???"},
			EnemyCards:  []string{"nope"},
		})
		require.NoError(t, err)
		require.Len(t, in.Hand, 1)
		require.Len(t, in.Field, 1)
		require.Empty(t, in.Enemy)
		require.Equal(t, engine.ModeDefault, in.Mode)
	})

	t.Run("empty resolved hand", func(t *testing.T) {
		_, err := s.Resolve(Request{InitialHand: []string{"Not A Card"}, UserField: []string{"Kuriboh"}})
		require.ErrorIs(t, err, ErrEmptyHand)
		_, err = s.Resolve(Request{})
		require.ErrorIs(t, err, ErrEmptyHand)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := s.Resolve(Request{InitialHand: []string{"Pot of Greed"}, Mode: "learned"})
		require.ErrorIs(t, err, engine.ErrUnknownMode)
	})

	t.Run("mode override", func(t *testing.T) {
		in, err := s.Resolve(Request{InitialHand: []string{"Pot of Greed"}, Mode: "feature_learning"})
		require.NoError(t, err)
		require.Equal(t, engine.ModeFeatureLearning, in.Mode)
	})
}

func TestRecommend(t *testing.T) {
	s := newTestService(t)

	res, err := s.Recommend(context.Background(), Request{
		InitialHand: []string{"Pot of Greed", "Dark Magician", "Ghost"},
		UserField:   []string{"Kuriboh"},
	})
	require.NoError(t, err)
	require.Len(t, res.Steps, 2)
	require.Equal(t, "Pot of Greed", res.Steps[0].PlayedCard)
	require.Equal(t, int64(55144522), res.Steps[0].CardID)
	require.Equal(t, engine.MessageNoValidMoves, res.Steps[1].Message)
	require.True(t, res.CanContinue)

	_, err = s.Recommend(context.Background(), Request{InitialHand: []string{"Ghost"}})
	require.ErrorIs(t, err, ErrEmptyHand)
}

func TestStream(t *testing.T) {
	s := newTestService(t)
	events := log.NewMemoryLogger()

	res, err := s.Stream(context.Background(), Request{InitialHand: []string{"Pot of Greed"}}, events)
	require.NoError(t, err)
	require.NotEmpty(t, events.Events())
	require.Equal(t, log.EventRunStart, events.Events()[0].Type)
	require.Equal(t, res.RunID, events.LastEvent().RunID)
}

func TestScenarios(t *testing.T) {
	path := writeScenarios(t)

	scenarios, err := ParseScenarioFile(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	req := scenarios[0].Request()
	require.Equal(t, []string{"Blue-Eyes White Dragon", "Pot of Greed"}, req.InitialHand)
	require.Equal(t, []string{"Kuriboh", "Kuriboh"}, req.UserField)
	require.Empty(t, req.EnemyCards)

	second, err := ScenarioByNumber(path, 2)
	require.NoError(t, err)
	require.Equal(t, "Facing a wizard", second.Name)
	require.Equal(t, "enemy", second.Request().Mode)

	_, err = ScenarioByNumber(path, 3)
	require.Error(t, err)
	_, err = ScenarioByNumber(path, 0)
	require.Error(t, err)

	_, err = ParseScenarios([]byte("scenarios: {"))
	require.Error(t, err)
}

func TestRunScenario(t *testing.T) {
	s := newTestService(t)
	sc, err := ScenarioByNumber(writeScenarios(t), 1)
	require.NoError(t, err)

	res, err := s.Recommend(context.Background(), sc.Request())
	require.NoError(t, err)
	require.Len(t, res.Steps, 3)
	require.Equal(t, "Blue-Eyes White Dragon", res.Steps[0].PlayedCard)
	require.Equal(t, "attack", res.Steps[0].Position)
	require.Equal(t, "Pot of Greed", res.Steps[1].PlayedCard)
	require.Equal(t, engine.MessageHandEmpty, res.Steps[2].Message)
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Catalog = filepath.Join(dir, "cards.csv")
	cfg.Engine.Metrics = true
	require.NoError(t, os.WriteFile(cfg.Catalog, []byte(testCSV), 0o644))

	s, err := FromConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, 5, s.Catalog().Len())

	res, err := s.Recommend(context.Background(), Request{InitialHand: []string{"Pot of Greed"}})
	require.NoError(t, err)
	require.NotNil(t, res.Metrics)

	cfg.Catalog = filepath.Join(dir, "missing.csv")
	_, err = FromConfig(cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestYAMLCatalogWithoutIDs(t *testing.T) {
	cat, err := catalog.ParseYAML([]byte(`cards:
  - name: Pot of Greed
    type: Spell Card
    desc: Draw 2 cards.
  - name: Raigeki
    type: Spell Card
    desc: Destroy all monsters your opponent controls.
`))
	require.NoError(t, err)
	s := New(cat, engine.New())

	res, err := s.Recommend(context.Background(), Request{InitialHand: []string{"Raigeki", "Pot of Greed"}})
	require.NoError(t, err)
	require.Len(t, res.Steps, 3)
	require.Equal(t, "Pot of Greed", res.Steps[0].PlayedCard)
	require.Equal(t, "Raigeki", res.Steps[1].PlayedCard)
	require.Equal(t, engine.MessageHandEmpty, res.Steps[2].Message)
}

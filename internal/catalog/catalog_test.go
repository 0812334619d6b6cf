package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `name,id,desc,atk,def,level,archetype,card_images,type
Blue-Eyes White Dragon,89631139,This legendary dragon is a powerful engine of destruction.,3000,2500,8,Blue-Eyes,https://img/89631139.jpg,Normal Monster
Pot of Greed,55144522,Draw 2 cards.,,,,,,Spell Card
Mirror Force,44095762,"When an opponent's monster declares an attack: Destroy all your opponent's Attack Position monsters.",,,,,,Trap Card
Kuriboh,40640057,"During damage calculation, discard this card to take no damage.",300.0,200.0,1.0,Kuriboh,,Effect Monster
`

func TestLoadCSV(t *testing.T) {
	cat, err := LoadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if cat.Len() != 4 {
		t.Fatalf("expected 4 cards, got %d", cat.Len())
	}

	bewd, ok := cat.Lookup("blue-eyes WHITE dragon")
	if !ok {
		t.Fatal("expected case-insensitive lookup to find Blue-Eyes White Dragon")
	}
	if bewd.Category != CategoryMonster || bewd.Level != 8 || bewd.ATK != 3000 {
		t.Errorf("unexpected card: %+v", bewd)
	}
	if bewd.ImageURL != "https://img/89631139.jpg" {
		t.Errorf("expected image url, got %q", bewd.ImageURL)
	}
	// 3000/100 + 12/8 + 0 ("destruction" is not "destroy")
	if bewd.NA != 31.5 {
		t.Errorf("expected NA 31.5, got %v", bewd.NA)
	}

	pot, _ := cat.Lookup("Pot of Greed")
	if pot.Category != CategorySpell || pot.EffectPoints != 20 || pot.NA != 20 {
		t.Errorf("unexpected Pot of Greed: %+v", pot)
	}

	mf, _ := cat.Lookup("Mirror Force")
	if mf.Category != CategoryTrap || !mf.Targeting() {
		t.Errorf("expected Mirror Force to be a targeting trap: %+v", mf)
	}

	kuriboh, _ := cat.Lookup("Kuriboh")
	if kuriboh.ATK != 300 || kuriboh.Level != 1 || kuriboh.EffectPoints != -10 {
		t.Errorf("unexpected Kuriboh: %+v", kuriboh)
	}
}

func TestLoadCSVEffectColumns(t *testing.T) {
	data := `name,id,desc,atk,def,level,archetype,card_images,type,destroy,banish,draw,summon,discard,gain,lose,from your deck,inflict
Raigeki,12580477,Destroy all monsters your opponent controls.,,,,,,Spell Card,1,0,0,0,0,0,0,0,0
Graceful Charity,79571449,Draw 3 cards then discard 2.,,,,,,Spell Card,0,0,1,0,1,0,0,0,0
`
	cat, err := LoadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	raigeki, _ := cat.Lookup("Raigeki")
	if raigeki.EffectPoints != 10 {
		t.Errorf("expected 10 EP from flag columns, got %d", raigeki.EffectPoints)
	}
	charity, _ := cat.Lookup("Graceful Charity")
	if charity.EffectPoints != 10 {
		t.Errorf("expected 20-10 EP from flag columns, got %d", charity.EffectPoints)
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	data := "name,id,desc,atk,def\nFoo,1,bar,1,1\n"
	cat, err := LoadCSV(strings.NewReader(data))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if cat != nil {
		t.Error("expected no partial catalog")
	}
	if !strings.Contains(err.Error(), "level") || !strings.Contains(err.Error(), "type") {
		t.Errorf("expected missing column names in error, got %q", err)
	}
}

func TestLoadCSVUnknownCategory(t *testing.T) {
	data := "name,id,desc,atk,def,level,archetype,type\nFoo,1,bar,1,1,1,,Pendulum Thing\n"
	_, err := LoadCSV(strings.NewReader(data))
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestLoadCSVBadStat(t *testing.T) {
	data := "name,id,desc,atk,def,level,archetype,type\nFoo,1,bar,lots,1,1,,Effect Monster\n"
	_, err := LoadCSV(strings.NewReader(data))
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestNewDuplicateName(t *testing.T) {
	_, err := New([]*Card{
		{Name: "Dark Magician", Category: CategoryMonster, Level: 7},
		{Name: "dark magician", Category: CategoryMonster, Level: 7},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestSearchAndResolve(t *testing.T) {
	cat, err := LoadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}

	if got := cat.Search(""); len(got) != 4 {
		t.Errorf("empty query should return all names, got %v", got)
	}
	got := cat.Search("OF")
	if len(got) != 1 || got[0] != "Pot of Greed" {
		t.Errorf("expected [Pot of Greed], got %v", got)
	}

	cards := cat.Resolve([]string{"kuriboh", "Nope", "KURIBOH", "Pot of Greed"})
	if len(cards) != 3 {
		t.Fatalf("expected unknown names to be dropped, got %d cards", len(cards))
	}
	if cards[0] != cards[1] {
		t.Error("expected duplicate names to resolve to the same catalog card")
	}

	tags := cat.Archetypes()
	if len(tags) != 2 || tags[0] != "Blue-Eyes" || tags[1] != "Kuriboh" {
		t.Errorf("unexpected archetypes %v", tags)
	}
}

func TestLoadYAML(t *testing.T) {
	data := `cards:
  - id: 46986414
    name: Dark Magician
    type: Normal Monster
    archetype: Dark Magician
    atk: 2500
    def: 2100
    level: 7
  - id: 83764718
    name: Monster Reborn
    type: Spell Card
    desc: Target 1 monster in either GY; Special Summon it.
`
	path := filepath.Join(t.TempDir(), "cards.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dm, ok := cat.Lookup("dark magician")
	if !ok || dm.TributesRequired() != 2 {
		t.Fatalf("unexpected Dark Magician: %+v", dm)
	}
	reborn, _ := cat.Lookup("Monster Reborn")
	if reborn.EffectPoints != 20 {
		t.Errorf("expected summon keyword to give 20 EP, got %d", reborn.EffectPoints)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("cards.xlsx"); err == nil {
		t.Error("expected an error for unsupported extension")
	}
}

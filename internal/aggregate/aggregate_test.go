package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/apyaml"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/input"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/progress"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/storyline"
)

// fakeCounter returns a fixed completed count per storyline key.
type fakeCounter struct {
	counts map[string]int
}

func (f *fakeCounter) CompletedCount(_ *progress.Profile, s storyline.Storyline) int {
	return f.counts[s.Key]
}

func foundProfile(name string) *progress.Profile {
	return &progress.Profile{
		Name:       name,
		Profession: "Elementalist",
		Race:       "Asura",
		Completed:  map[int]struct{}{},
	}
}

func TestCharacter_NoOverridesIncludesAllStorylines(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})
	sel := input.Character{Weight: 80}

	result := agg.Character(sel, foundProfile("Mara"))

	assert.Equal(t, "Mara", result.Name)
	assert.Equal(t, 80, result.Weight)
	// One character trigger plus one trigger per storyline.
	require.Len(t, result.Triggers, 1+len(storyline.All))

	char := result.Triggers[0]
	assert.Equal(t, "character", char.OptionName)
	assert.Equal(t, "Mara", char.OptionResult)

	table, ok := char.Get("storyline")
	require.True(t, ok)
	require.NotNil(t, table.Table)
	assert.Len(t, table.Table, len(storyline.All))
	for _, s := range storyline.All {
		assert.Equal(t, s.DefaultWeight, table.Table[s.Key+" Mara"])
	}
}

func TestCharacter_ProfessionAndRaceTables(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})

	result := agg.Character(input.Character{Weight: 50}, foundProfile("Mara"))

	char := result.Triggers[0]
	prof, ok := char.Get("character_profession")
	require.True(t, ok)
	assert.Equal(t, apyaml.Weights{"Elementalist": input.DefaultWeight}, prof.Table)

	race, ok := char.Get("character_race")
	require.True(t, ok)
	assert.Equal(t, apyaml.Weights{"Asura": input.DefaultWeight}, race.Table)
}

func TestCharacter_OverrideMapRestrictsStorylines(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})
	sel := input.Character{
		Weight:    50,
		Storyline: map[string]int{"core": 5, "path_of_fire": 90},
	}

	result := agg.Character(sel, foundProfile("Anka"))

	// Character trigger plus one per overridden storyline.
	require.Len(t, result.Triggers, 3)

	table, _ := result.Triggers[0].Get("storyline")
	assert.Equal(t, apyaml.Weights{
		"core Anka":         5,
		"path_of_fire Anka": 90,
	}, table.Table)
}

func TestCharacter_UnknownOverrideKeyIgnored(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})
	sel := input.Character{
		Weight:    50,
		Storyline: map[string]int{"core": 5, "not_a_storyline": 99},
	}

	result := agg.Character(sel, foundProfile("Anka"))

	table, _ := result.Triggers[0].Get("storyline")
	assert.Equal(t, apyaml.Weights{"core Anka": 5}, table.Table)
}

func TestCharacter_EmptyOverrideMapIncludesNothing(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})
	sel := input.Character{Weight: 50, Storyline: map[string]int{}}

	result := agg.Character(sel, foundProfile("Anka"))

	require.Len(t, result.Triggers, 1)
	table, _ := result.Triggers[0].Get("storyline")
	assert.Empty(t, table.Table)
}

func TestCharacter_StorylineTriggerContents(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{counts: map[string]int{"core": 12}})
	sel := input.Character{Weight: 50, Storyline: map[string]int{"core": 50}}

	result := agg.Character(sel, foundProfile("Mara"))
	require.Len(t, result.Triggers, 2)

	sub := result.Triggers[1]
	assert.Equal(t, "storyline", sub.OptionName)
	assert.Equal(t, "core Mara", sub.OptionResult)

	maxQuests, ok := sub.Get("max_quests")
	require.True(t, ok)
	assert.Equal(t, "37", maxQuests.Scalar, "core allows 49 quests, 12 already done")

	key, ok := sub.Get("storyline")
	require.True(t, ok)
	assert.Equal(t, "core", key.Scalar)
}

func TestCharacter_MaxQuestsMayGoNegative(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{counts: map[string]int{"heart_of_thorns": 20}})
	sel := input.Character{Weight: 50, Storyline: map[string]int{"heart_of_thorns": 50}}

	result := agg.Character(sel, foundProfile("Mara"))

	maxQuests, ok := result.Triggers[1].Get("max_quests")
	require.True(t, ok)
	assert.Equal(t, "-4", maxQuests.Scalar)
}

func TestCharacter_StorylineTriggersInEnumerationOrder(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})

	result := agg.Character(input.Character{Weight: 50}, foundProfile("Mara"))

	require.Len(t, result.Triggers, 1+len(storyline.All))
	for i, s := range storyline.All {
		assert.Equal(t, s.Key+" Mara", result.Triggers[1+i].OptionResult)
	}
}

func TestAssemble_FoldsResultsIntoDefaultDocument(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})
	mara := agg.Character(input.Character{Weight: 80, Storyline: map[string]int{"core": 5}}, foundProfile("Mara"))
	anka := agg.Character(input.Character{Weight: 20, Storyline: map[string]int{"core": 7}}, foundProfile("Anka"))

	doc := Assemble([]*CharacterResult{mara, anka})

	assert.Equal(t, apyaml.Weights{"Mara": 80, "Anka": 20}, doc.GameOptions.Character)
	require.Len(t, doc.GameOptions.Triggers, 4)
	assert.Equal(t, "Mara", doc.GameOptions.Triggers[0].OptionResult)
	assert.Equal(t, "core Mara", doc.GameOptions.Triggers[1].OptionResult)
	assert.Equal(t, "Anka", doc.GameOptions.Triggers[2].OptionResult)

	// Static defaults are untouched.
	assert.Equal(t, 10, doc.GameOptions.RequiredMistFragments)
}

func TestAssemble_EmptyResults(t *testing.T) {
	t.Parallel()
	doc := Assemble(nil)
	assert.Empty(t, doc.GameOptions.Character)
	assert.Empty(t, doc.GameOptions.Triggers)
}

func TestCharacter_NotFoundProfileUsesRandomValues(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(&fakeCounter{})
	profile := &progress.Profile{
		Name:       "Ghost",
		Profession: progress.RandomValue,
		Race:       progress.RandomValue,
	}

	result := agg.Character(input.Character{Weight: 50}, profile)

	char := result.Triggers[0]
	prof, _ := char.Get("character_profession")
	assert.Equal(t, apyaml.Weights{"random": input.DefaultWeight}, prof.Table)

	// With no progress data every storyline keeps its full quest budget.
	maxQuests, _ := result.Triggers[1].Get("max_quests")
	assert.Equal(t, "49", maxQuests.Scalar)
}

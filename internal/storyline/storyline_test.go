package storyline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_HasTenStorylines(t *testing.T) {
	t.Parallel()
	require.Len(t, All, 10)
}

func TestAll_UniqueIDsAndKeys(t *testing.T) {
	t.Parallel()
	ids := make(map[string]bool, len(All))
	keys := make(map[string]bool, len(All))
	for _, s := range All {
		assert.False(t, ids[s.ID], "duplicate id %s", s.ID)
		assert.False(t, keys[s.Key], "duplicate key %s", s.Key)
		ids[s.ID] = true
		keys[s.Key] = true
	}
}

func TestAll_EnumerationOrder(t *testing.T) {
	t.Parallel()
	// The output contract depends on this exact order.
	want := []string{
		"core", "season_1", "season_2", "heart_of_thorns", "season_3",
		"path_of_fire", "season_4", "icebrood_saga", "end_of_dragons",
		"secrets_of_the_obscure",
	}
	got := make([]string, 0, len(All))
	for _, s := range All {
		got = append(got, s.Key)
	}
	assert.Equal(t, want, got)
}

func TestAll_PositiveWeightsAndMaxQuests(t *testing.T) {
	t.Parallel()
	for _, s := range All {
		assert.Positive(t, s.DefaultWeight, "storyline %s", s.Key)
		assert.Positive(t, s.MaxQuests, "storyline %s", s.Key)
	}
}

func TestKnownKey(t *testing.T) {
	t.Parallel()
	assert.True(t, KnownKey("core"))
	assert.True(t, KnownKey("secrets_of_the_obscure"))
	assert.False(t, KnownKey("janthir_wilds"))
	assert.False(t, KnownKey(""))
}

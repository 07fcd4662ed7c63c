// Package catalog builds the lookup tables the progress resolver joins
// against: season story-id sets keyed by storyline and the quest catalog
// keyed by quest id.
//
// Construction is a pure fold over already-fetched collections; the package
// never touches the network. Every storyline must have a fetched season:
// a missing season is a broken 1:1 join and fails construction loudly.
package catalog

import (
	"errors"
	"fmt"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/gw2api"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/storyline"
)

// ErrSeasonMissing indicates a storyline whose season record was not among
// the fetched seasons.
var ErrSeasonMissing = errors.New("season missing for storyline")

// Catalog holds the reference indices for one run. Immutable once built.
type Catalog struct {
	stories map[string]map[int]struct{} // storyline id -> story id set
	quests  map[int]gw2api.Quest
}

// New indexes the fetched seasons and quests. seasons must contain one
// record per storyline, keyed by season UUID.
func New(seasons map[string]gw2api.Season, quests map[int]gw2api.Quest) (*Catalog, error) {
	c := &Catalog{
		stories: make(map[string]map[int]struct{}, len(storyline.All)),
		quests:  quests,
	}
	if c.quests == nil {
		c.quests = make(map[int]gw2api.Quest)
	}

	for _, s := range storyline.All {
		season, ok := seasons[s.ID]
		if !ok {
			return nil, fmt.Errorf("catalog: %w: %s (%s)", ErrSeasonMissing, s.Key, s.ID)
		}
		set := make(map[int]struct{}, len(season.StoryIDs))
		for _, id := range season.StoryIDs {
			set[id] = struct{}{}
		}
		c.stories[s.ID] = set
	}

	return c, nil
}

// StoryIDs returns the story id set of the storyline's season. The set is
// shared; callers must not mutate it.
func (c *Catalog) StoryIDs(storylineID string) map[int]struct{} {
	return c.stories[storylineID]
}

// ContainsStory reports whether the storyline's season contains the story id.
func (c *Catalog) ContainsStory(storylineID string, storyID int) bool {
	_, ok := c.stories[storylineID][storyID]
	return ok
}

// Quest looks up a quest by id. The second result is false when the id is
// not in the catalog; the remote API can report completed quest ids that
// were never published in the catalog endpoint.
func (c *Catalog) Quest(id int) (gw2api.Quest, bool) {
	q, ok := c.quests[id]
	return q, ok
}

// QuestCount returns the number of quests in the catalog.
func (c *Catalog) QuestCount() int {
	return len(c.quests)
}

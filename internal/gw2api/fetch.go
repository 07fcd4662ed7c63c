package gw2api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/storyline"
)

// Character is the core record of one character on the account.
type Character struct {
	Name       string `json:"name"`
	Race       string `json:"race"`
	Profession string `json:"profession"`
}

// Season links a storyline to the story ids it contains. ID is the season
// UUID, the join key back to the storyline table.
type Season struct {
	ID       string `json:"id"`
	StoryIDs []int  `json:"stories"`
}

// Quest is one entry of the quest catalog. StoryID is the join key into
// Season.StoryIDs.
type Quest struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	StoryID int    `json:"story"`
}

// CharacterNames fetches the names of every character on the account.
func (c *Client) CharacterNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.get(ctx, "/characters", nil, true, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Character fetches the core record of a single character.
func (c *Client) Character(ctx context.Context, name string) (Character, error) {
	var ch Character
	path := "/characters/" + url.PathEscape(name) + "/core"
	if err := c.get(ctx, path, nil, true, &ch); err != nil {
		return Character{}, err
	}
	return ch, nil
}

// CharacterQuests fetches the set of quest ids the character has completed.
func (c *Client) CharacterQuests(ctx context.Context, name string) (map[int]struct{}, error) {
	var ids []int
	path := "/characters/" + url.PathEscape(name) + "/quests"
	if err := c.get(ctx, path, nil, true, &ids); err != nil {
		return nil, err
	}
	completed := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		completed[id] = struct{}{}
	}
	return completed, nil
}

// Season fetches one season record by its UUID.
func (c *Client) Season(ctx context.Context, id string) (Season, error) {
	var s Season
	if err := c.get(ctx, "/stories/seasons/"+id, nil, false, &s); err != nil {
		return Season{}, err
	}
	return s, nil
}

// QuestIDs fetches the full quest id catalog.
func (c *Client) QuestIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.get(ctx, "/quests", nil, false, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// QuestBatch fetches the detail records for up to batchSize quest ids in a
// single request, ids joined into one query parameter.
func (c *Client) QuestBatch(ctx context.Context, ids []int) ([]Quest, error) {
	joined := make([]string, len(ids))
	for i, id := range ids {
		joined[i] = strconv.Itoa(id)
	}
	query := url.Values{"ids": []string{strings.Join(joined, ",")}}

	var quests []Quest
	if err := c.get(ctx, "/quests", query, false, &quests); err != nil {
		return nil, err
	}
	return quests, nil
}

// Characters fetches the core records for the given names concurrently and
// returns them keyed by character name. A single failing request aborts the
// whole stage.
func (c *Client) Characters(ctx context.Context, names []string) (map[string]Character, error) {
	return fanOut(ctx, names, func(ctx context.Context, name string) (string, Character, error) {
		ch, err := c.Character(ctx, name)
		return ch.Name, ch, err
	})
}

// Seasons fetches the season record of every storyline concurrently and
// returns them keyed by season UUID.
func (c *Client) Seasons(ctx context.Context) (map[string]Season, error) {
	ids := make([]string, 0, len(storyline.All))
	for _, s := range storyline.All {
		ids = append(ids, s.ID)
	}
	return fanOut(ctx, ids, func(ctx context.Context, id string) (string, Season, error) {
		s, err := c.Season(ctx, id)
		return s.ID, s, err
	})
}

// QuestCatalog fetches the full quest catalog: the id list first, then the
// detail records in concurrent batches, merged into one map keyed by quest
// id.
func (c *Client) QuestCatalog(ctx context.Context) (map[int]Quest, error) {
	ids, err := c.QuestIDs(ctx)
	if err != nil {
		return nil, err
	}

	total := len(ids)
	var chunks [][]int
	for len(ids) > 0 {
		n := min(c.batchSize, len(ids))
		chunks = append(chunks, ids[:n])
		ids = ids[n:]
	}

	quests := make(map[int]Quest, total)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		g.Go(func() error {
			batch, err := c.QuestBatch(gctx, chunk)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, q := range batch {
				quests[q.ID] = q
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quests, nil
}

// fanOut launches one goroutine per item, waits for all of them, and
// gathers the results into a map keyed by the identifier each task derives.
// The first error cancels the remaining tasks and fails the stage.
// Completion order is arbitrary; the keyed map makes downstream use
// deterministic.
func fanOut[I any, K comparable, V any](
	ctx context.Context,
	items []I,
	fetch func(ctx context.Context, item I) (K, V, error),
) (map[K]V, error) {
	results := make(map[K]V, len(items))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		g.Go(func() error {
			key, val, err := fetch(gctx, item)
			if err != nil {
				return err
			}
			mu.Lock()
			results[key] = val
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

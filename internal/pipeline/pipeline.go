// Package pipeline orchestrates the end-to-end generation run: bulk
// fetching account and reference data, resolving per-character progress,
// aggregating it into option tables, and assembling the output document.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/aggregate"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/apyaml"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/catalog"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/gw2api"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/input"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/progress"
)

// apiClient is the API surface the pipeline consumes. Satisfied by
// gw2api.Client.
type apiClient interface {
	CharacterNames(ctx context.Context) ([]string, error)
	Characters(ctx context.Context, names []string) (map[string]gw2api.Character, error)
	CharacterQuests(ctx context.Context, name string) (map[int]struct{}, error)
	Seasons(ctx context.Context) (map[string]gw2api.Season, error)
	QuestCatalog(ctx context.Context) (map[int]gw2api.Quest, error)
}

// Runner executes generation runs against one API client.
type Runner struct {
	client apiClient
	logger *log.Logger
}

// RunnerOption is a functional option for configuring a Runner.
type RunnerOption func(*Runner)

// WithLogger attaches a charmbracelet/log Logger to the runner and its
// stages.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a Runner over the given API client.
func NewRunner(client apiClient, opts ...RunnerOption) *Runner {
	r := &Runner{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one generation run and returns the assembled document.
//
// The account character list, the season records, and the quest catalog are
// fetched concurrently. Characters are then processed sequentially in
// selection order (account order when the selection is empty), so the same
// input always yields the same document.
func (r *Runner) Run(ctx context.Context, in *input.Input) (*apyaml.Document, error) {
	start := time.Now()
	var (
		accountNames []string
		seasons      map[string]gw2api.Season
		quests       map[int]gw2api.Quest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accountNames, err = r.client.CharacterNames(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		seasons, err = r.client.Seasons(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		quests, err = r.client.QuestCatalog(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	r.logInfo("reference data fetched",
		"account_characters", len(accountNames),
		"seasons", len(seasons),
		"quests", len(quests),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	cat, err := catalog.New(seasons, quests)
	if err != nil {
		return nil, err
	}

	selected := r.selectedNames(in, accountNames)

	// Core records are only needed for selected characters that actually
	// exist on the account; the rest resolve to the random fallback.
	onAccount := make(map[string]struct{}, len(accountNames))
	for _, name := range accountNames {
		onAccount[name] = struct{}{}
	}
	var fetchNames []string
	for _, name := range selected {
		if _, ok := onAccount[name]; ok {
			fetchNames = append(fetchNames, name)
		}
	}

	characters, err := r.client.Characters(ctx, fetchNames)
	if err != nil {
		return nil, err
	}

	resolver := progress.NewResolver(r.client, characters, cat, progress.WithResolverLogger(r.logger))
	agg := aggregate.NewAggregator(resolver, aggregate.WithAggregatorLogger(r.logger))

	results := make([]*aggregate.CharacterResult, 0, len(selected))
	for _, name := range selected {
		sel, ok := in.Characters.Get(name)
		if !ok {
			sel = input.Character{Weight: input.DefaultWeight}
		}

		profile, err := resolver.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		results = append(results, agg.Character(sel, profile))
	}

	doc := aggregate.Assemble(results)
	r.logInfo("document assembled",
		"characters", len(selected),
		"triggers", len(doc.GameOptions.Triggers),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return doc, nil
}

// selectedNames returns the characters to process, in processing order: the
// selection's document order, or the account's list order when the
// selection is empty.
func (r *Runner) selectedNames(in *input.Input, accountNames []string) []string {
	if in.Characters.Len() > 0 {
		return in.Characters.Names()
	}
	r.logInfo("no characters selected; processing whole account", "count", len(accountNames))
	return accountNames
}

// logInfo logs at Info level if a logger is configured.
func (r *Runner) logInfo(msg string, keyvals ...any) {
	if r.logger != nil {
		r.logger.Info(msg, keyvals...)
	}
}

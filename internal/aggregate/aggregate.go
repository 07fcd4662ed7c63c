// Package aggregate folds resolved character progress and user-specified
// weights into the output document.
//
// For each selected character it produces a weight entry, a character
// trigger carrying profession/race/storyline sub-tables, and one storyline
// trigger per included storyline. Trigger order is part of the output
// contract: a character's trigger precedes its storyline triggers, and each
// character's group precedes the next character's.
package aggregate

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/apyaml"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/input"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/progress"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/storyline"
)

// completionCounter reports how many of a profile's completed quests belong
// to a storyline. Implemented by progress.Resolver.
type completionCounter interface {
	CompletedCount(p *progress.Profile, s storyline.Storyline) int
}

// CharacterResult is the aggregated output for one selected character.
type CharacterResult struct {
	// Name is the character name.
	Name string

	// Weight is the character's selection weight.
	Weight int

	// Triggers holds the character trigger followed by its storyline
	// triggers in enumeration order.
	Triggers []*apyaml.Trigger
}

// Aggregator builds CharacterResults from profiles and selections.
type Aggregator struct {
	counter completionCounter
	logger  *log.Logger
}

// AggregatorOption is a functional option for configuring an Aggregator.
type AggregatorOption func(*Aggregator)

// WithAggregatorLogger attaches a charmbracelet/log Logger to the aggregator.
func WithAggregatorLogger(l *log.Logger) AggregatorOption {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// NewAggregator creates an Aggregator using the given completion counter.
func NewAggregator(counter completionCounter, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{counter: counter}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Character aggregates one selected character.
//
// Storyline inclusion follows the selection: with no override map every
// storyline is included at its static default weight; with an override map
// only the storylines whose canonical keys appear in it are included, at
// the override weight. Keys in the map that name no storyline are ignored.
func (a *Aggregator) Character(sel input.Character, profile *progress.Profile) *CharacterResult {
	result := &CharacterResult{
		Name:   profile.Name,
		Weight: sel.Weight,
	}

	trigger := apyaml.NewTrigger("character", profile.Name)
	trigger.Set("character_profession", apyaml.TableValue(apyaml.Weights{
		profile.Profession: input.DefaultWeight,
	}))
	trigger.Set("character_race", apyaml.TableValue(apyaml.Weights{
		profile.Race: input.DefaultWeight,
	}))

	storylines := apyaml.Weights{}
	trigger.Set("storyline", apyaml.TableValue(storylines))
	result.Triggers = append(result.Triggers, trigger)

	for _, s := range storyline.All {
		weight := s.DefaultWeight
		if sel.Storyline != nil {
			override, ok := sel.Storyline[s.Key]
			if !ok {
				// An explicit override map includes only the storylines
				// it names.
				continue
			}
			weight = override
		}

		completed := a.counter.CompletedCount(profile, s)
		key := fmt.Sprintf("%s %s", s.Key, profile.Name)
		storylines[key] = weight

		// The remaining budget may go to zero or below when the character
		// already completed more quests than the template's maximum; the
		// value passes through uninterpreted.
		remaining := s.MaxQuests - completed
		sub := apyaml.NewTrigger("storyline", key)
		sub.Set("max_quests", apyaml.ScalarValue(fmt.Sprintf("%d", remaining)))
		sub.Set("storyline", apyaml.ScalarValue(s.Key))
		result.Triggers = append(result.Triggers, sub)

		a.logDebug("storyline aggregated",
			"character", profile.Name,
			"storyline", s.Key,
			"weight", weight,
			"completed", completed,
			"max_quests", remaining,
		)
	}

	return result
}

// logDebug logs at Debug level if a logger is configured.
func (a *Aggregator) logDebug(msg string, keyvals ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, keyvals...)
	}
}

// Assemble folds the aggregated results into a fresh default document:
// character weights into the character table, trigger groups appended in
// result order. Purely structural.
func Assemble(results []*CharacterResult) *apyaml.Document {
	doc := apyaml.NewDocument()
	for _, r := range results {
		doc.GameOptions.Character[r.Name] = r.Weight
		doc.GameOptions.Triggers = append(doc.GameOptions.Triggers, r.Triggers...)
	}
	return doc
}

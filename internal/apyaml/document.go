package apyaml

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the top-level player options file.
type Document struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Game        string      `yaml:"game"`
	GameOptions GameOptions `yaml:"Guild Wars 2"`
}

// GameOptions carries the Guild Wars 2 option tables. Field order matches
// the template the downstream tooling consumes; do not reorder.
type GameOptions struct {
	ProgressionBalancing   Weights    `yaml:"progression_balancing"`
	Accessibility          Weights    `yaml:"accessibility"`
	Character              Weights    `yaml:"character"`
	Triggers               []*Trigger `yaml:"triggers"`
	CharacterProfession    Weights    `yaml:"character_profession"`
	CharacterRace          Weights    `yaml:"character_race"`
	StartingMainhandWeapon Weights    `yaml:"starting_mainhand_weapon"`
	StartingOffhandWeapon  Weights    `yaml:"starting_offhand_weapon"`
	GroupContent           Weights    `yaml:"group_content"`
	IncludeCompetitive     Weights    `yaml:"include_competitive"`
	AchievementWeight      Weights    `yaml:"achievement_weight"`
	QuestWeight            Weights    `yaml:"quest_weight"`
	TrainingWeight         Weights    `yaml:"training_weight"`
	WorldBossWeight        Weights    `yaml:"world_boss_weight"`
	Storyline              Weights    `yaml:"storyline"`
	RequiredMistFragments  int        `yaml:"required_mist_fragments"`
	ExtraMistFragments     int        `yaml:"extra_mist_fragments"`
	HealSkill              Weights    `yaml:"heal_skill"`
	GearSlots              Weights    `yaml:"gear_slots"`
}

// NewDocument returns the pre-populated default template: static option
// weights from the Guild Wars 2 world template, empty character tables, and
// no triggers. The aggregation stage fills in character and trigger data.
func NewDocument() *Document {
	return &Document{
		Name:        "Player{number}",
		Description: "Customized Guild Wars 2 Template",
		Game:        GameName,
		GameOptions: GameOptions{
			ProgressionBalancing: Weights{
				"random":      0,
				"random-low":  0,
				"random-high": 0,
				"disabled":    0,
				"normal":      50,
				"extreme":     0,
			},
			Accessibility: Weights{
				"locations": 0,
				"items":     50,
				"minimal":   0,
			},
			Character:           Weights{},
			Triggers:            []*Trigger{},
			CharacterProfession: Weights{},
			CharacterRace:       Weights{},
			StartingMainhandWeapon: Weights{
				"none":                         0,
				"axe":                          0,
				"dagger":                       0,
				"mace":                         0,
				"pistol":                       0,
				"sword":                        0,
				"scepter":                      0,
				"greatsword":                   0,
				"hammer":                       0,
				"longbow":                      0,
				"rifle":                        0,
				"short_bow":                    0,
				"staff":                        0,
				"random_proficient":            50,
				"random_proficient_one_handed": 0,
				"random_proficient_two_handed": 0,
			},
			StartingOffhandWeapon: Weights{
				"none":              0,
				"scepter":           0,
				"focus":             0,
				"shield":            0,
				"torch":             0,
				"warhorn":           0,
				"random_proficient": 50,
			},
			GroupContent: Weights{
				"none":     50,
				"five_man": 25,
				"ten_man":  10,
			},
			IncludeCompetitive: Weights{
				"false": 50,
				"true":  10,
			},
			AchievementWeight: Weights{
				"500":         50,
				"random":      0,
				"random-low":  0,
				"random-high": 0,
			},
			QuestWeight: Weights{
				"100":         50,
				"random":      0,
				"random-low":  0,
				"random-high": 0,
			},
			TrainingWeight: Weights{
				"100":         50,
				"random":      0,
				"random-low":  0,
				"random-high": 0,
			},
			WorldBossWeight: Weights{
				"250":         50,
				"random":      0,
				"random-low":  0,
				"random-high": 0,
			},
			Storyline:             Weights{},
			RequiredMistFragments: 10,
			ExtraMistFragments:    5,
			HealSkill: Weights{
				"randomize": 1,
				"early":     10,
				"starting":  50,
			},
			GearSlots: Weights{
				"randomize": 5,
				"early":     50,
				"starting":  10,
			},
		},
	}
}

// Marshal serializes the document with 2-space indentation. Map keys
// serialize sorted, so the same document always produces the same bytes.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("apyaml: encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("apyaml: encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

package apyaml

// Trigger is a conditional option override: when the named option resolves
// to the given result, the nested options are applied. The options are
// namespaced by game, matching the Archipelago trigger format.
type Trigger struct {
	OptionCategory string                            `yaml:"option_category"`
	OptionName     string                            `yaml:"option_name"`
	OptionResult   string                            `yaml:"option_result"`
	Options        map[string]map[string]OptionValue `yaml:"options"`
}

// NewTrigger creates a trigger in the Guild Wars 2 category matching
// option name = result, with an empty nested option set.
func NewTrigger(name, result string) *Trigger {
	return &Trigger{
		OptionCategory: GameName,
		OptionName:     name,
		OptionResult:   result,
		Options: map[string]map[string]OptionValue{
			GameName: {},
		},
	}
}

// Set assigns a nested option in the game's namespace.
func (t *Trigger) Set(option string, value OptionValue) {
	t.Options[GameName][option] = value
}

// Get returns a nested option from the game's namespace.
func (t *Trigger) Get(option string) (OptionValue, bool) {
	v, ok := t.Options[GameName][option]
	return v, ok
}

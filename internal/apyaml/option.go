// Package apyaml models the Archipelago player-options YAML document the
// tool generates: nested weighted-option tables, conditional triggers, and
// the static Guild Wars 2 template defaults.
package apyaml

// GameName is the option category and game identifier used throughout the
// document.
const GameName = "Guild Wars 2"

// Weights is a weighted-option table: option value label -> selection
// weight. Weights are non-negative; zero keeps an option listed but never
// selected. Keys serialize in sorted order, so documents are reproducible.
type Weights map[string]int

// OptionValue is the value of one option inside a trigger: either a plain
// scalar or a nested weighted table. Exactly one form is set; a non-nil
// Table wins. The two forms exist because triggers mix fixed assignments
// (max_quests: "12") with weighted sub-tables (character_race: {...}).
type OptionValue struct {
	Scalar string
	Table  Weights
}

// ScalarValue returns the scalar form.
func ScalarValue(v string) OptionValue {
	return OptionValue{Scalar: v}
}

// TableValue returns the table form.
func TableValue(w Weights) OptionValue {
	return OptionValue{Table: w}
}

// MarshalYAML serializes the active form directly, without a wrapper node.
func (v OptionValue) MarshalYAML() (any, error) {
	if v.Table != nil {
		return v.Table, nil
	}
	return v.Scalar, nil
}

// Package storyline defines the static table of Guild Wars 2 storylines.
//
// A storyline is a narrative arc (the core game, a Living World season, or
// an expansion) identified remotely by a stable season UUID. The table is
// static reference data: the API never changes these identifiers, and the
// default weights and quest maximums come from the Archipelago template.
package storyline

// Storyline describes one narrative arc.
type Storyline struct {
	// Name is the human-readable storyline name.
	Name string

	// ID is the season UUID used by the /v2/stories/seasons endpoint.
	ID string

	// Key is the canonical lowercase token used in option tables and in
	// per-character storyline overrides in the input document.
	Key string

	// DefaultWeight is the selection weight applied when the user supplies
	// no storyline overrides for a character.
	DefaultWeight int

	// MaxQuests is the total quest count of the storyline in the template.
	MaxQuests int
}

// All lists every storyline in enumeration order. Output ordering of
// storyline triggers follows this order, so it must not be changed.
var All = []Storyline{
	{Name: "Core", ID: "215AAA0F-CDAC-4F93-86DA-C155A99B5784", Key: "core", DefaultWeight: 1, MaxQuests: 49},
	{Name: "Living World Season 1", ID: "A49D0CD7-E725-4141-8E10-180F1CED7CAF", Key: "season_1", DefaultWeight: 2, MaxQuests: 30},
	{Name: "Living World Season 2", ID: "A515A1D3-4BD7-4594-AE30-2C5D05FF5960", Key: "season_2", DefaultWeight: 4, MaxQuests: 32},
	{Name: "Heart of Thorns", ID: "B8901E58-DC9D-4525-ADB2-79C93593291E", Key: "heart_of_thorns", DefaultWeight: 8, MaxQuests: 16},
	{Name: "Living World Season 3", ID: "09766A86-D88D-4DF2-9385-259E9A8CA583", Key: "season_3", DefaultWeight: 16, MaxQuests: 36},
	{Name: "Path of Fire", ID: "EAB597C0-C484-4FD3-9430-31433BAC81B6", Key: "path_of_fire", DefaultWeight: 32, MaxQuests: 16},
	{Name: "Living World Season 4", ID: "C22AFD21-667A-4AA8-8210-AC74EAEE58BB", Key: "season_4", DefaultWeight: 64, MaxQuests: 30},
	{Name: "The Icebrood Saga", ID: "EDCAE800-302A-4D9B-8331-3CC769ADA0B3", Key: "icebrood_saga", DefaultWeight: 128, MaxQuests: 41},
	{Name: "End of Dragons", ID: "D1B709AB-92B6-4EE9-8B40-2B7C628E5022", Key: "end_of_dragons", DefaultWeight: 256, MaxQuests: 27},
	{Name: "Secrets of the Obscure", ID: "AEE99452-D323-4ABB-8F49-D7C0A752CBD1", Key: "secrets_of_the_obscure", DefaultWeight: 512, MaxQuests: 20},
}

// KnownKey reports whether key names one of the storylines. Override maps
// in the input document may contain unknown keys; those are ignored rather
// than rejected, and this predicate lets validation warn about them.
func KnownKey(key string) bool {
	for _, s := range All {
		if s.Key == key {
			return true
		}
	}
	return false
}

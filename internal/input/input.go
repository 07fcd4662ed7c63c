// Package input loads the character selection document (input.yaml).
//
// The document supplies the pre-obtained API access token and a mapping of
// character name to selection weight plus optional per-storyline weight
// overrides:
//
//	api_key: XXXX-XXXX
//	characters:
//	  Mara Ironpaw:
//	    weight: 80
//	    storyline:
//	      core: 5
//	  Second Character:
//
// The characters mapping is decoded through yaml.Node so the document order
// of the entries is preserved; output trigger order follows it.
package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultWeight is the selection weight applied when a character entry does
// not specify one.
const DefaultWeight = 50

// Input is the parsed selection document. Immutable once loaded.
type Input struct {
	// APIKey is the opaque access token passed through to every
	// authenticated endpoint.
	APIKey string

	// Characters holds the per-character selections in document order. An
	// empty selection means "process every character on the account with
	// defaults".
	Characters Selections
}

// Character is one per-character selection entry.
type Character struct {
	// Weight is the character's selection weight.
	Weight int

	// Storyline maps canonical storyline keys to override weights. A nil
	// map means no overrides were supplied and every storyline uses its
	// static default weight. A non-nil map restricts output to exactly the
	// storylines whose keys it contains.
	Storyline map[string]int
}

// Selections is an ordered character-name -> Character mapping.
type Selections struct {
	order  []string
	byName map[string]Character
}

// Names returns the character names in document order.
func (s *Selections) Names() []string {
	return s.order
}

// Get returns the selection for a character name.
func (s *Selections) Get(name string) (Character, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Has reports whether the selection contains the character name.
func (s *Selections) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of selected characters.
func (s *Selections) Len() int {
	return len(s.order)
}

// characterDoc is the on-disk shape of a character entry. Weight is a
// pointer so an absent key can be distinguished from an explicit zero.
type characterDoc struct {
	Weight    *int           `yaml:"weight"`
	Storyline map[string]int `yaml:"storyline"`
}

// UnmarshalYAML decodes the document, walking the characters mapping node
// directly to preserve entry order.
func (in *Input) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		APIKey     string    `yaml:"api_key"`
		Characters yaml.Node `yaml:"characters"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	in.APIKey = raw.APIKey
	in.Characters = Selections{byName: make(map[string]Character)}

	chars := raw.Characters
	if chars.Kind == 0 || chars.Tag == "!!null" {
		return nil
	}
	if chars.Kind != yaml.MappingNode {
		return fmt.Errorf("characters: expected a mapping, got %s", chars.Tag)
	}

	for i := 0; i+1 < len(chars.Content); i += 2 {
		keyNode, valNode := chars.Content[i], chars.Content[i+1]

		var name string
		if err := keyNode.Decode(&name); err != nil {
			return fmt.Errorf("characters: decoding name: %w", err)
		}
		if in.Characters.Has(name) {
			return fmt.Errorf("characters: duplicate entry %q", name)
		}

		var doc characterDoc
		if valNode.Tag != "!!null" {
			if err := valNode.Decode(&doc); err != nil {
				return fmt.Errorf("characters.%s: %w", name, err)
			}
		}

		c := Character{Weight: DefaultWeight, Storyline: doc.Storyline}
		if doc.Weight != nil {
			c.Weight = *doc.Weight
		}
		if c.Weight < 0 {
			return fmt.Errorf("characters.%s: weight must not be negative, got %d", name, c.Weight)
		}
		for key, w := range doc.Storyline {
			if w < 0 {
				return fmt.Errorf("characters.%s: storyline.%s: weight must not be negative, got %d", name, key, w)
			}
		}

		in.Characters.order = append(in.Characters.order, name)
		in.Characters.byName[name] = c
	}

	return nil
}

// Load reads and parses the selection document at the given path. An empty
// api_key is not an error here; the caller may supply the token another way
// and is responsible for rejecting a run without one.
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", path, err)
	}
	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing input %s: %w", path, err)
	}
	return &in, nil
}

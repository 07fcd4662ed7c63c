// Package config loads and validates the tool's settings file (gw2yaml.toml).
//
// The settings file tunes the API client and the input/output locations. It
// is distinct from the input document (input.yaml), which carries the access
// credential and the per-character selection; see the input package. All
// settings have defaults matching the reference deployment, so the file is
// optional.
package config

// ConfigFileName is the name of the settings file.
const ConfigFileName = "gw2yaml.toml"

// Config is the top-level settings structure mapping to gw2yaml.toml.
type Config struct {
	API   APIConfig   `toml:"api"`
	Files FilesConfig `toml:"files"`
}

// APIConfig maps to the [api] section. It tunes the Guild Wars 2 API client
// and the shared rate budget.
type APIConfig struct {
	// BaseURL is the API root. Overridden in tests to point at a mock server.
	BaseURL string `toml:"base_url"`

	// RequestsPerMinute is the global request quota shared by all concurrent
	// fetches.
	RequestsPerMinute int `toml:"requests_per_minute"`

	// JitterMaxMS is the upper bound, in milliseconds, of the random delay
	// added after each admission to spread out request bursts.
	JitterMaxMS int `toml:"jitter_max_ms"`

	// QuestBatchSize is the maximum number of quest ids per batched detail
	// request. The API caps this at 200; the reference deployment uses 100.
	QuestBatchSize int `toml:"quest_batch_size"`

	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// FilesConfig maps to the [files] section.
type FilesConfig struct {
	// Input is the path of the character selection document.
	Input string `toml:"input"`

	// Output is the path the generated template is written to.
	Output string `toml:"output"`
}

// NewDefaults returns a Config populated with the reference deployment's
// defaults: 300 requests per minute, up to 1s of jitter, 100-id quest
// batches, input.yaml in, gw2.yaml out.
func NewDefaults() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://api.guildwars2.com/v2",
			RequestsPerMinute: 300,
			JitterMaxMS:       1000,
			QuestBatchSize:    100,
			TimeoutSeconds:    30,
		},
		Files: FilesConfig{
			Input:  "input.yaml",
			Output: "gw2.yaml",
		},
	}
}

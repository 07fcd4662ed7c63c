package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/config"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/gw2api"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/input"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/logging"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/pipeline"
	"github.com/Feldar99/gw2-ap-yaml-generator/internal/storyline"
)

// generateCmd is the explicit form of the default action, so scripts can
// spell out what they run.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fetch account data and write the options template",
	Long: `Fetch the account's characters, the season records, and the quest catalog
from the Guild Wars 2 API, then write the weighted-options template for the
selected characters.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// runGenerate is the RunE implementation shared by the root command and the
// generate subcommand. It wires settings, the input document, the API
// client, and the pipeline, and writes the output file only after the whole
// run succeeded.
func runGenerate(cmd *cobra.Command) error {
	logger := logging.New("generate")

	// Step 1: Load and validate the settings file.
	cfg, meta, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	vr := config.Validate(cfg, meta)
	for _, issue := range vr.Warnings() {
		logger.Warn(issue.Message, "field", issue.Field)
	}
	if vr.HasErrors() {
		var fields []string
		for _, issue := range vr.Errors() {
			logger.Error(issue.Message, "field", issue.Field)
			fields = append(fields, issue.Field)
		}
		return fmt.Errorf("invalid settings: %s", strings.Join(fields, ", "))
	}

	inputPath := flagInput
	if inputPath == "" {
		inputPath = cfg.Files.Input
	}
	outputPath := flagOutput
	if outputPath == "" {
		outputPath = cfg.Files.Output
	}

	// Step 2: Load the selection document.
	in, err := input.Load(inputPath)
	if err != nil {
		return err
	}
	if flagAPIKey != "" {
		in.APIKey = flagAPIKey
	}
	if in.APIKey == "" {
		return fmt.Errorf("no API access token: set api_key in %s or pass --api-key", inputPath)
	}
	warnUnknownStorylines(logger, in)
	logger.Info("input loaded", "path", inputPath, "characters", in.Characters.Len())

	// Step 3: Build the shared rate limiter and the API client.
	limiter := gw2api.NewRateLimiter(
		cfg.API.RequestsPerMinute,
		time.Duration(cfg.API.JitterMaxMS)*time.Millisecond,
	)
	client := gw2api.NewClient(in.APIKey,
		gw2api.WithBaseURL(cfg.API.BaseURL),
		gw2api.WithLimiter(limiter),
		gw2api.WithBatchSize(cfg.API.QuestBatchSize),
		gw2api.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		}),
		gw2api.WithLogger(logging.New("gw2api")),
	)

	// Step 4: Run the pipeline. Ctrl-C cancels in-flight fetches.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(client, pipeline.WithLogger(logging.New("pipeline")))
	doc, err := runner.Run(ctx, in)
	if err != nil {
		return err
	}

	// Step 5: Serialize fully before touching the output file, so a failed
	// run never leaves a truncated template behind.
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", outputPath, err)
	}
	logger.Info("template written", "path", outputPath, "bytes", len(data))

	return nil
}

// warnUnknownStorylines reports selection override keys that name no
// storyline. They are ignored downstream; the warning catches typos like
// "season1" for "season_1".
func warnUnknownStorylines(logger *log.Logger, in *input.Input) {
	for _, name := range in.Characters.Names() {
		sel, _ := in.Characters.Get(name)
		for key := range sel.Storyline {
			if !storyline.KnownKey(key) {
				logger.Warn("unknown storyline key in selection; ignored", "character", name, "key", key)
			}
		}
	}
}

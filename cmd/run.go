package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/masar-app/recommender/internal/catalog"
	"github.com/masar-app/recommender/internal/logger"
	"github.com/masar-app/recommender/internal/profile"
	"github.com/masar-app/recommender/internal/recommend"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowDetails  = "Show recommendation details"
	PromptDumpToFile   = "Dump recommendations to file"
	PromptExit         = "Exit"
	defaultProfileFile = "profile.json"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowDetails, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the recommendation flow once for a profile file",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("profile-file", "p", "", "json file with the user profile record")
	runCmd.Flags().StringP("output-file", "o", "", "write the ranked result to this file")
	runCmd.Flags().BoolP("no-prompt", "y", false, "do not ask what to do with the result")

	viper.BindPFlag("profile-file", runCmd.Flags().Lookup("profile-file"))
	viper.BindPFlag("output-file", runCmd.Flags().Lookup("output-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the masar-recommender", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	profileFile := strings.TrimSpace(viper.GetString("profile-file"))
	if profileFile == "" {
		profileFile = strings.TrimSpace(config.ProfileFile)
	}
	if profileFile == "" {
		profileFile = defaultProfileFile
	}

	record, err := profile.LoadRecord(profileFile)
	if err != nil {
		logger.Fatal("loading the profile record",
			zap.Error(err),
			zap.String("hint", "point the 'profile-file' key or the -p flag to a json file"),
		)
	}

	engine, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	result, err := engine.Run(ctx, record)
	if errors.Is(err, recommend.ErrNoCandidates) {
		logger.Info("exiting", zap.String("reason", "no candidates found in any source"))
		return
	}
	if err != nil {
		logger.Fatal("recommendation run failed", zap.Error(err))
	}

	logger.Info("recommendations ready",
		zap.Int("courses", len(result.Courses)),
		zap.Int("jobs", len(result.Jobs)),
	)
	logTop(logger, "course", result.Courses)
	logTop(logger, "job", result.Jobs)

	outputFile := strings.TrimSpace(viper.GetString("output-file"))
	if outputFile == "" {
		outputFile = strings.TrimSpace(config.OutputFile)
	}
	if outputFile != "" {
		if err := result.WriteFile(outputFile); err != nil {
			logger.Fatal("writing the result file", zap.Error(err))
		}
		logger.Info("result written", zap.String("filename", outputFile))
	}

	if cmd.Flag("no-prompt").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, result *recommend.Result, logger *zap.Logger) error {
	switch action {
	case PromptShowDetails:
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("render result: %w", err)
		}
		fmt.Println(string(pretty))
		return nil
	case PromptDumpToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func logTop(logger *zap.Logger, kind string, scored []catalog.ScoredCandidate) {
	for _, sc := range scored {
		logger.Info("top "+kind,
			zap.Int("rank", sc.Rank),
			zap.Float64("score", sc.Score),
			zap.String("score_source", string(sc.ScoreSource)),
			zap.String("title", sc.Title),
			zap.String("provider", sc.Provider),
		)
	}
}

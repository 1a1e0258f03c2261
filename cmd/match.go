package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/profile"
	"go.uber.org/zap"
)

const PromptInfer = "infer from the candidate profile"

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one position",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("candidate", "c", "", "candidate JSON file, - for stdin")
	matchCmd.Flags().StringP("position", "p", "", "position JSON file, - for stdin")
	matchCmd.Flags().StringP("reason", "r", "", "listening reason; inferred from the candidate when empty")
	matchCmd.Flags().BoolP("interactive", "i", false, "pick the listening reason from a list")

	matchCmd.MarkFlagRequired("candidate")
	matchCmd.MarkFlagRequired("position")
}

func match(cmd *cobra.Command) error {
	engine, zlog, err := setup()
	if err != nil {
		return err
	}
	defer zlog.Sync()

	candidatePath, _ := cmd.Flags().GetString("candidate")
	positionPath, _ := cmd.Flags().GetString("position")
	if candidatePath == "-" && positionPath == "-" {
		return errors.New("only one of --candidate and --position can read stdin")
	}

	candidate, err := readRecord(candidatePath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	position, err := readRecord(positionPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	reason, _ := cmd.Flags().GetString("reason")
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		reason, err = selectReason()
		if err != nil {
			return err
		}
	}

	result, err := engine.MatchFields(context.Background(), candidate, position, reason)
	if err != nil {
		return err
	}

	zlog.Info("match finished",
		zap.String(logger.FieldReason, string(result.ListeningReason)),
		zap.Float64("total_score", result.TotalScore),
		zap.Bool("matrices_valid", result.MatricesValid),
	)

	return printJSON(cmd.OutOrStdout(), result)
}

func selectReason() (string, error) {
	items := make([]string, 0, len(profile.AllReasons)+1)
	items = append(items, PromptInfer)
	for _, r := range profile.AllReasons {
		items = append(items, string(r))
	}

	prompt := promptui.Select{
		Label: "Why is the candidate listening?",
		Items: items,
	}
	_, choice, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	if choice == PromptInfer {
		return "", nil
	}
	return choice, nil
}

// setup builds the logger and the engine shared by the scoring commands.
func setup() (*matching.Engine, *zap.Logger, error) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("getting a config: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	engine, err := newEngine(config, logger)
	if err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}

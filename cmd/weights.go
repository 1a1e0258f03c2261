package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/weights"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the weight matrices after configuration overrides",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := getConfig(viper.GetViper())
		if err != nil {
			return fmt.Errorf("getting a config: %w", err)
		}
		raw, _ := cmd.Flags().GetString("reason")

		report, err := weightsReport(config, raw)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)

	weightsCmd.Flags().StringP("reason", "r", "", "only print the matrix of this listening reason")
}

type matrixReport struct {
	Matrix weights.Matrix `json:"matrix"`
	Sum    float64        `json:"sum"`
	Valid  bool           `json:"valid"`
}

func weightsReport(config *Config, rawReason string) (map[weights.Reason]matrixReport, error) {
	matrices, err := weights.Default().ApplyOverrides(config.Weights)
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}

	reasons := profile.AllReasons
	if rawReason != "" {
		reason, ok := profile.ParseListeningReason(rawReason)
		if !ok {
			return nil, fmt.Errorf("unknown listening reason %q", rawReason)
		}
		reasons = []weights.Reason{reason}
	}

	out := make(map[weights.Reason]matrixReport, len(reasons))
	for _, r := range reasons {
		m := matrices.For(r)
		out[r] = matrixReport{
			Matrix: m,
			Sum:    m.Sum(),
			Valid:  weights.Matrices{r: m}.Validate() == nil,
		}
	}
	return out, nil
}

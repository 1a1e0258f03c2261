package cmd

import (
	"context"
	"errors"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/report"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank positions for one or more candidates",
	Long:  `Score every candidate of the candidates file against every position of the
positions file. A single candidate object gives one ranking, an array gives one
ranking per candidate.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("candidates", "c", "", "candidate JSON object or array, - for stdin")
	batchCmd.Flags().StringP("positions", "p", "", "positions JSON array, - for stdin")
	batchCmd.Flags().StringP("reason", "r", "", "listening reason for every candidate; inferred when empty")
	batchCmd.Flags().StringP("xlsx", "x", "", "also write the rankings to this .xlsx file")

	batchCmd.MarkFlagRequired("candidates")
	batchCmd.MarkFlagRequired("positions")
}

func batch(cmd *cobra.Command) error {
	ctx := context.Background()

	engine, zlog, err := setup()
	if err != nil {
		return err
	}
	defer zlog.Sync()

	candidatesPath, _ := cmd.Flags().GetString("candidates")
	positionsPath, _ := cmd.Flags().GetString("positions")
	if candidatesPath == "-" && positionsPath == "-" {
		return errors.New("only one of --candidates and --positions can read stdin")
	}

	candidateRecords, crossMatch, err := readRecords(candidatesPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	positionRecords, _, err := readRecords(positionsPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rawReason, _ := cmd.Flags().GetString("reason")
	reason, _ := profile.ParseListeningReason(rawReason)
	if rawReason != "" && reason == "" {
		zlog.Warn("unknown listening reason, inferring one per candidate", zap.String("reason", rawReason))
	}

	candidates := decodeCandidates(candidateRecords, zlog)
	positions := decodePositions(positionRecords, zlog)

	zlog.Info("starting the batch",
		zap.Int("candidates", len(candidates)),
		zap.Int("positions", len(positions)),
	)

	out, batches, err := scoreBatch(ctx, engine, candidates, positions, reason, crossMatch)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
		if err := report.WriteFile(path, batches...); err != nil {
			return err
		}
		zlog.Info("report written", zap.String("path", path))
	}

	zlog.Debug("engine stats", zap.Any("stats", engine.Stats()))

	return printJSON(cmd.OutOrStdout(), out)
}

// scoreBatch returns a single BatchResult for a candidate object and the candidate-keyed
// CrossMatch map for a candidate array, whatever its length.
func scoreBatch(ctx context.Context, engine *matching.Engine, candidates []*profile.Candidate, positions []*profile.Position, reason profile.ListeningReason, crossMatch bool) (any, []*matching.BatchResult, error) {
	if !crossMatch {
		result, err := engine.MatchMany(ctx, candidates[0], positions, reason)
		if err != nil {
			return nil, nil, err
		}
		return result, []*matching.BatchResult{result}, nil
	}

	results, err := engine.CrossMatch(ctx, candidates, positions, reason)
	if err != nil {
		return nil, nil, err
	}
	return results, sortedBatches(results), nil
}

func sortedBatches(results map[string]*matching.BatchResult) []*matching.BatchResult {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*matching.BatchResult, 0, len(keys))
	for _, k := range keys {
		out = append(out, results[k])
	}
	return out
}

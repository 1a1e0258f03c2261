package report

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleBatch(t *testing.T) *matching.BatchResult {
	t.Helper()

	c, _ := profile.DecodeCandidate(map[string]any{
		"id":             "cand-1",
		"skills":         "go, postgres",
		"current_salary": 50000,
		"desired_salary": 60000,
	})
	strong, _ := profile.DecodePosition(map[string]any{"id": "strong", "required_skills": "go, postgres", "salary_max": 65000})
	weak, _ := profile.DecodePosition(map[string]any{"id": "weak", "required_skills": "cobol", "salary_max": 30000})

	batch, err := matching.New(matching.Config{}, matching.Deps{}).
		MatchMany(context.Background(), c, []*profile.Position{weak, strong}, "")
	require.NoError(t, err)
	return batch
}

func TestWrite(t *testing.T) {
	batch := sampleBatch(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, batch, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, ComponentsSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, summaryHeaders, summary[0])
	assert.Equal(t, []string{"1", "cand-1", "strong"}, summary[1][:3])
	assert.Equal(t, "weak", summary[2][2])
	assert.Equal(t, "low_compensation", summary[1][4])

	components, err := f.GetRows(ComponentsSheet)
	require.NoError(t, err)
	require.Len(t, components, 1+2*len(scoring.Components))
	assert.Equal(t, componentHeaders, components[0])
	assert.Equal(t, string(scoring.Semantic), components[1][2])
	// Location has no routing provider here.
	assert.Equal(t, "TRUE", components[4][9])
}

func TestWriteFileAddsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch")
	require.NoError(t, WriteFile(path, sampleBatch(t)))

	f, err := excelize.OpenFile(path + ".xlsx")
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

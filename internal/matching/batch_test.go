package matching

import (
	"context"
	"testing"

	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePositions(t *testing.T, records ...map[string]any) []*profile.Position {
	t.Helper()

	out := make([]*profile.Position, 0, len(records))
	for _, r := range records {
		p, _ := profile.DecodePosition(r)
		out = append(out, p)
	}
	return out
}

func TestMatchMany(t *testing.T) {
	e := New(Config{Concurrency: 2}, Deps{})
	c, _ := profile.DecodeCandidate(scenarioCandidate())

	positions := decodePositions(t,
		scenarioPosition(),
		map[string]any{"required_skills": "cobol", "salary_max": 40000},
		map[string]any{"id": "pos-1", "required_skills": "python, django, react", "salary_min": 65000, "salary_max": 80000},
	)
	positions = append(positions, nil)

	batch, err := e.MatchMany(context.Background(), c, positions, "")
	require.NoError(t, err)

	assert.NotEmpty(t, batch.RunID)
	assert.Equal(t, "cand-1", batch.CandidateID)
	require.Len(t, batch.Results, 3)
	assert.Contains(t, batch.Results, "pos-1")
	assert.Contains(t, batch.Results, "position-2")
	assert.Contains(t, batch.Results, "pos-1#2")

	require.Len(t, batch.Ranking, 3)
	assert.Equal(t, "pos-1#2", batch.Ranking[0])
	assert.Equal(t, "position-2", batch.Ranking[2])
	assert.Same(t, batch.Results["pos-1#2"], batch.Best())

	for i := 1; i < len(batch.Ranking); i++ {
		prev, cur := batch.Results[batch.Ranking[i-1]], batch.Results[batch.Ranking[i]]
		assert.GreaterOrEqual(t, prev.TotalScore, cur.TotalScore)
	}
	assert.Equal(t, int64(3), e.Stats().Matches)
}

func TestMatchManyEmpty(t *testing.T) {
	e := New(Config{}, Deps{})
	c, _ := profile.DecodeCandidate(scenarioCandidate())

	batch, err := e.MatchMany(context.Background(), c, nil, "")
	require.NoError(t, err)
	assert.Empty(t, batch.Results)
	assert.Nil(t, batch.Best())

	_, err = e.MatchMany(context.Background(), nil, nil, "")
	require.Error(t, err)
}

func TestMatchManyCancelled(t *testing.T) {
	e := New(Config{}, Deps{})
	c, _ := profile.DecodeCandidate(scenarioCandidate())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.MatchMany(ctx, c, decodePositions(t, scenarioPosition()), "")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCrossMatch(t *testing.T) {
	e := New(Config{}, Deps{})

	first, _ := profile.DecodeCandidate(scenarioCandidate())
	second, _ := profile.DecodeCandidate(map[string]any{"skills": "cobol", "desired_salary": 90000})
	positions := decodePositions(t, scenarioPosition(), map[string]any{"id": "pos-2", "required_skills": "cobol"})

	out, err := e.CrossMatch(context.Background(), []*profile.Candidate{first, second}, positions, profile.ReasonOther)
	require.NoError(t, err)

	require.Len(t, out, 2)
	require.Contains(t, out, "cand-1")
	require.Contains(t, out, "candidate-2")

	for _, batch := range out {
		assert.Len(t, batch.Results, 2)
		for _, r := range batch.Results {
			assert.Equal(t, profile.ReasonOther, r.ListeningReason)
		}
	}
	assert.Equal(t, "pos-2", out["candidate-2"].Ranking[0])
}

func TestUniqueKeys(t *testing.T) {
	ids := []string{"a", "", "a", "b", ""}
	got := uniqueKeys("position", len(ids), func(i int) string { return ids[i] })
	assert.Equal(t, []string{"a", "position-2", "a#2", "b", "position-5"}, got)
}

package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldMatchID correlates every log line of one candidate/position match.
	FieldMatchID     = "match_id"
	FieldCandidateID = "candidate_id"
	FieldPositionID  = "position_id"
	FieldReason      = "listening_reason"
	// FieldRunID correlates the matches of one batch.
	FieldRunID = "run_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, substituting a no-op logger for nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// Match identifies one scoring run in logs.
type Match struct {
	ID          string
	CandidateID string
	PositionID  string
	Reason      string
}

// MatchFields returns the non-empty identifiers of m as zap fields.
func MatchFields(m Match) []zap.Field {
	return StringFields(
		StringField{Key: FieldMatchID, Value: m.ID},
		StringField{Key: FieldCandidateID, Value: m.CandidateID},
		StringField{Key: FieldPositionID, Value: m.PositionID},
		StringField{Key: FieldReason, Value: m.Reason},
	)
}

// WithMatchFields attaches the match identifiers to logger.
func WithMatchFields(logger *zap.Logger, m Match) *zap.Logger {
	return WithFields(logger, MatchFields(m)...)
}

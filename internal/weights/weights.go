package weights

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/scoring"
)

// Reason is a candidate's listening reason; matrices are keyed by it.
type Reason = profile.ListeningReason

// Tolerance allowed between a matrix sum and 1.0.
const Tolerance = 1e-6

// Matrix maps every component to its weight for one listening reason.
type Matrix map[scoring.Component]float64

// Matrices holds one Matrix per listening reason.
type Matrices map[Reason]Matrix

var defaults = Matrices{
	profile.ReasonOther: {
		scoring.Semantic:          0.20,
		scoring.Salary:            0.15,
		scoring.Experience:        0.12,
		scoring.Location:          0.10,
		scoring.Motivations:       0.08,
		scoring.Sector:            0.06,
		scoring.ContractType:      0.05,
		scoring.Timing:            0.05,
		scoring.WorkModality:      0.05,
		scoring.SalaryProgression: 0.04,
		scoring.ListeningReason:   0.05,
		scoring.CandidateStatus:   0.05,
	},
	profile.ReasonLowCompensation: {
		scoring.Semantic:          0.17,
		scoring.Salary:            0.25,
		scoring.Experience:        0.10,
		scoring.Location:          0.08,
		scoring.Motivations:       0.07,
		scoring.Sector:            0.05,
		scoring.ContractType:      0.04,
		scoring.Timing:            0.04,
		scoring.WorkModality:      0.04,
		scoring.SalaryProgression: 0.08,
		scoring.ListeningReason:   0.04,
		scoring.CandidateStatus:   0.04,
	},
	profile.ReasonRoleMismatch: {
		scoring.Semantic:          0.28,
		scoring.Salary:            0.12,
		scoring.Experience:        0.15,
		scoring.Location:          0.08,
		scoring.Motivations:       0.10,
		scoring.Sector:            0.06,
		scoring.ContractType:      0.04,
		scoring.Timing:            0.04,
		scoring.WorkModality:      0.04,
		scoring.SalaryProgression: 0.03,
		scoring.ListeningReason:   0.03,
		scoring.CandidateStatus:   0.03,
	},
	profile.ReasonNoGrowthPerspective: {
		scoring.Semantic:          0.18,
		scoring.Salary:            0.12,
		scoring.Experience:        0.12,
		scoring.Location:          0.08,
		scoring.Motivations:       0.12,
		scoring.Sector:            0.06,
		scoring.ContractType:      0.04,
		scoring.Timing:            0.04,
		scoring.WorkModality:      0.04,
		scoring.SalaryProgression: 0.12,
		scoring.ListeningReason:   0.04,
		scoring.CandidateStatus:   0.04,
	},
	profile.ReasonLocationDissatisfaction: {
		scoring.Semantic:          0.17,
		scoring.Salary:            0.12,
		scoring.Experience:        0.10,
		scoring.Location:          0.22,
		scoring.Motivations:       0.06,
		scoring.Sector:            0.05,
		scoring.ContractType:      0.04,
		scoring.Timing:            0.04,
		scoring.WorkModality:      0.10,
		scoring.SalaryProgression: 0.03,
		scoring.ListeningReason:   0.04,
		scoring.CandidateStatus:   0.03,
	},
	profile.ReasonFlexibilityNeeded: {
		scoring.Semantic:          0.17,
		scoring.Salary:            0.12,
		scoring.Experience:        0.10,
		scoring.Location:          0.12,
		scoring.Motivations:       0.07,
		scoring.Sector:            0.05,
		scoring.ContractType:      0.04,
		scoring.Timing:            0.04,
		scoring.WorkModality:      0.18,
		scoring.SalaryProgression: 0.03,
		scoring.ListeningReason:   0.04,
		scoring.CandidateStatus:   0.04,
	},
}

// Default returns a copy of the built-in matrices.
func Default() Matrices {
	return defaults.Clone()
}

// Clone deep-copies the matrices.
func (m Matrices) Clone() Matrices {
	out := make(Matrices, len(m))
	for reason, matrix := range m {
		cp := make(Matrix, len(matrix))
		for c, w := range matrix {
			cp[c] = w
		}
		out[reason] = cp
	}
	return out
}

// For returns the matrix of a reason, falling back to ReasonOther for unknown reasons.
func (m Matrices) For(r Reason) Matrix {
	if matrix, ok := m[r]; ok {
		return matrix
	}
	return m[profile.ReasonOther]
}

// Base is the matrix boosts are measured against.
func (m Matrices) Base() Matrix {
	return m[profile.ReasonOther]
}

// Sum adds up the weights in a fixed component order so repeated calls agree bit for bit.
func (m Matrix) Sum() float64 {
	sum := 0.0
	for _, c := range scoring.Components {
		sum += m[c]
	}
	return sum
}

// ValidationError reports a matrix whose weights do not sum to 1.
type ValidationError struct {
	Reason Reason
	Sum    float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("weights for %q sum to %.6f, want 1.0", e.Reason, e.Sum)
}

// Validate checks every matrix sums to 1 within Tolerance. All failures are joined.
func (m Matrices) Validate() error {
	var errs []error
	for _, reason := range m.reasons() {
		sum := m[reason].Sum()
		if math.Abs(sum-1) > Tolerance {
			errs = append(errs, &ValidationError{Reason: reason, Sum: sum})
		}
	}
	return errors.Join(errs...)
}

func (m Matrices) reasons() []Reason {
	out := make([]Reason, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ApplyOverrides replaces individual weights, e.g. from configuration:
// {"low_compensation": {"salary": 0.3}}. Unknown reasons or components are rejected.
// The result is not validated; callers decide what to do with a drifting matrix.
func (m Matrices) ApplyOverrides(overrides map[string]map[string]float64) (Matrices, error) {
	out := m.Clone()
	for rawReason, entries := range overrides {
		reason, ok := profile.ParseListeningReason(rawReason)
		if !ok {
			return nil, fmt.Errorf("unknown listening reason %q", rawReason)
		}
		matrix, ok := out[reason]
		if !ok {
			matrix = Matrix{}
			out[reason] = matrix
		}
		for rawComponent, w := range entries {
			component, ok := scoring.ParseComponent(rawComponent)
			if !ok {
				return nil, fmt.Errorf("%s: unknown component %q", reason, rawComponent)
			}
			if w < 0 {
				return nil, fmt.Errorf("%s: negative weight %v for %s", reason, w, component)
			}
			matrix[component] = w
		}
	}
	return out, nil
}

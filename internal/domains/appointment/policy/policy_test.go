package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"visaprep/internal/domains/appointment/policy"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  policy.Outcome
	}{
		{
			name:  "well inside block window",
			hours: 2,
			want:  policy.Outcome{CanCancel: false, Penalized: false},
		},
		{
			name:  "just under block boundary",
			hours: 23.99,
			want:  policy.Outcome{CanCancel: false, Penalized: false},
		},
		{
			name:  "exactly on block boundary is allowed with penalty",
			hours: 24.0,
			want:  policy.Outcome{CanCancel: true, Penalized: true},
		},
		{
			name:  "inside penalty window",
			hours: 50,
			want:  policy.Outcome{CanCancel: true, Penalized: true},
		},
		{
			name:  "just under free boundary",
			hours: 71.99,
			want:  policy.Outcome{CanCancel: true, Penalized: true},
		},
		{
			name:  "exactly on free boundary is free",
			hours: 72.0,
			want:  policy.Outcome{CanCancel: true, Penalized: false},
		},
		{
			name:  "far ahead",
			hours: 500,
			want:  policy.Outcome{CanCancel: true, Penalized: false},
		},
		{
			name:  "appointment already passed",
			hours: -3,
			want:  policy.Outcome{CanCancel: false, Penalized: false},
		},
		{
			name:  "zero hours remaining",
			hours: 0,
			want:  policy.Outcome{CanCancel: false, Penalized: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Evaluate(tt.hours))
		})
	}
}

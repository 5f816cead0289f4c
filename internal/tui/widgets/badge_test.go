// ABOUTME: Tests for status badge helpers
// ABOUTME: Verifies threshold classification and plain-text status names

package widgets

import "testing"

func TestStatusFromPercent(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    StatusLevel
	}{
		{"well under warning", 50, StatusOK},
		{"just under warning", 79.9, StatusOK},
		{"at warning threshold", 80, StatusWarning},
		{"between thresholds", 90, StatusWarning},
		{"at critical threshold", 95, StatusCritical},
		{"over the limit", 120, StatusCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusFromPercent(tc.percent, 80, 95); got != tc.want {
				t.Errorf("StatusFromPercent(%v) = %v, want %v", tc.percent, got, tc.want)
			}
		})
	}
}

func TestStatusLevelString(t *testing.T) {
	cases := map[StatusLevel]string{
		StatusOK:       "ok",
		StatusWarning:  "warning",
		StatusCritical: "critical",
		StatusInfo:     "info",
		StatusNeutral:  "neutral",
	}

	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", level, got, want)
		}
	}
}

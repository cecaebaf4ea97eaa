package model

import "testing"

// TestProbeResultStatusLine tests status display formatting.
func TestProbeResultStatusLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   ProbeResult
		expected string
	}{
		{
			name:     "code with reason",
			result:   ProbeResult{StatusCode: 200, Reason: "OK"},
			expected: "200 OK",
		},
		{
			name:     "unknown code without reason",
			result:   ProbeResult{StatusCode: 418},
			expected: "418",
		},
		{
			name:     "failed probe",
			result:   ProbeResult{Error: "connection refused"},
			expected: "-",
		},
		{
			name:     "no status parsed",
			result:   ProbeResult{},
			expected: "-",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.StatusLine(); got != tt.expected {
				t.Errorf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}

// TestSweepReportCounts tests the aggregate counters.
func TestSweepReportCounts(t *testing.T) {
	t.Parallel()

	report := NewSweepReport("rit.edu", 443, true)
	report.Add(ProbeResult{Target: "/", StatusCode: 200, Reason: "OK"})
	report.Add(ProbeResult{Target: "/old", StatusCode: 301, Redirect: "https://rit.edu/new"})
	report.Add(ProbeResult{Target: "/admin", Error: "connection refused"})

	if report.Succeeded() != 2 {
		t.Errorf("got %d succeeded, expected 2", report.Succeeded())
	}
	if report.Failed() != 1 {
		t.Errorf("got %d failed, expected 1", report.Failed())
	}
	if report.Redirects() != 1 {
		t.Errorf("got %d redirects, expected 1", report.Redirects())
	}
	if !report.TLS {
		t.Error("expected TLS to be recorded")
	}
	if report.Started.IsZero() {
		t.Error("expected a start time")
	}
}

package model

import (
	"strconv"
	"time"
)

// ProbeResult is the outcome of one raw exchange against one path on
// the sweep target.
type ProbeResult struct {
	// URL is the absolute URL that was probed.
	URL string `yaml:"url"`

	// Target is the path sent in the request.
	Target string `yaml:"target"`

	// StatusCode is the parsed status code, 0 when unavailable.
	StatusCode int `yaml:"status_code"`

	// Reason is the reason phrase for known status codes.
	Reason string `yaml:"reason,omitempty"`

	// Redirect is the extracted Location value for 301/302 responses.
	Redirect string `yaml:"redirect,omitempty"`

	// ResponseBytes is the total number of bytes received.
	ResponseBytes int `yaml:"response_bytes"`

	// Decoded reports whether the response decoded cleanly.
	Decoded bool `yaml:"decoded"`

	// Elapsed is the wall-clock duration of the exchange.
	Elapsed time.Duration `yaml:"elapsed"`

	// Error holds the failure message when the exchange did not
	// complete. Empty for successful exchanges.
	Error string `yaml:"error,omitempty"`
}

// Succeeded reports whether the exchange completed.
func (r *ProbeResult) Succeeded() bool {
	return r.Error == ""
}

// StatusLine returns "CODE REASON" for display, or a placeholder when
// the probe failed before a status was read.
func (r *ProbeResult) StatusLine() string {
	if !r.Succeeded() || r.StatusCode == 0 {
		return "-"
	}
	if r.Reason == "" {
		return strconv.Itoa(r.StatusCode)
	}
	return strconv.Itoa(r.StatusCode) + " " + r.Reason
}

// SweepReport aggregates the results of probing many paths on one host.
type SweepReport struct {
	// Host is the target host.
	Host string `yaml:"host"`

	// Port is the target port.
	Port int `yaml:"port"`

	// TLS reports whether the exchanges used TLS.
	TLS bool `yaml:"tls"`

	// Started is when the sweep began.
	Started time.Time `yaml:"started"`

	// Results holds one entry per probed path.
	Results []ProbeResult `yaml:"results"`
}

// NewSweepReport creates an empty report for the given target.
func NewSweepReport(host string, port int, tls bool) *SweepReport {
	return &SweepReport{
		Host:    host,
		Port:    port,
		TLS:     tls,
		Started: time.Now(),
	}
}

// Add appends a probe result to the report.
func (r *SweepReport) Add(result ProbeResult) {
	r.Results = append(r.Results, result)
}

// Succeeded returns the number of completed exchanges.
func (r *SweepReport) Succeeded() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed exchanges.
func (r *SweepReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Redirects returns the number of results carrying a redirect target.
func (r *SweepReport) Redirects() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Redirect != "" {
			n++
		}
	}
	return n
}

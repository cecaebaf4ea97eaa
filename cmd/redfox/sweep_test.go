package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/redfox/internal/model"
)

// startSweepServer serves count connections, answering by requested
// path: /old gets a 301 redirect, everything else a 200.
func startSweepServer(t *testing.T, count int) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for i := 0; i < count; i++ {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()

				buf := make([]byte, 4096)
				var req []byte
				for !bytes.Contains(req, []byte("\r\n\r\n")) {
					n, err := conn.Read(buf)
					req = append(req, buf[:n]...)
					if err != nil {
						break
					}
				}

				if bytes.Contains(req, []byte("/old ")) {
					_, _ = conn.Write([]byte("HTTP/1.1 301 Moved Permanently\r\n" +
						"Location: http://library.rit.edu/new\r\n\r\n"))
					return
				}
				_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\n\r\n<html>ok</html>"))
			}(conn)
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port
}

// TestSweepCmdYAML tests a sweep with a YAML report on stdout.
func TestSweepCmdYAML(t *testing.T) {
	t.Parallel()

	port := startSweepServer(t, 2)

	out, err := runCommand(t,
		"sweep", "127.0.0.1", "/", "/old",
		"--port", strconv.Itoa(port),
		"--timeout", "5s",
		"--format", "yaml",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded model.SweepReport
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v\n%s", err, out)
	}

	if len(decoded.Results) != 2 {
		t.Fatalf("got %d results, expected 2", len(decoded.Results))
	}

	byTarget := make(map[string]model.ProbeResult, len(decoded.Results))
	for _, r := range decoded.Results {
		byTarget[r.Target] = r
	}

	if got := byTarget["/"].StatusCode; got != 200 {
		t.Errorf("got status %d for /, expected 200", got)
	}
	if got := byTarget["/old"].StatusCode; got != 301 {
		t.Errorf("got status %d for /old, expected 301", got)
	}
	if got := byTarget["/old"].Redirect; got != "http://library.rit.edu/new" {
		t.Errorf("got redirect %q, expected %q", got, "http://library.rit.edu/new")
	}
}

// TestSweepCmdDomainFilter tests that out-of-domain redirect targets
// are dropped from the report.
func TestSweepCmdDomainFilter(t *testing.T) {
	t.Parallel()

	port := startSweepServer(t, 1)

	out, err := runCommand(t,
		"sweep", "127.0.0.1", "/old",
		"--port", strconv.Itoa(port),
		"--timeout", "5s",
		"--format", "yaml",
		"--domain", "apple.com",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded model.SweepReport
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if got := decoded.Results[0].Redirect; got != "" {
		t.Errorf("expected the redirect to be filtered, got %q", got)
	}
}

// TestSweepCmdDepthFilter tests that deep redirect targets are dropped.
func TestSweepCmdDepthFilter(t *testing.T) {
	t.Parallel()

	port := startSweepServer(t, 1)

	// The 301 target http://library.rit.edu/new has depth 1.
	out, err := runCommand(t,
		"sweep", "127.0.0.1", "/old",
		"--port", strconv.Itoa(port),
		"--timeout", "5s",
		"--format", "yaml",
		"--max-depth", "1",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded model.SweepReport
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if got := decoded.Results[0].Redirect; got != "http://library.rit.edu/new" {
		t.Errorf("expected the depth-1 redirect to survive a cap of 1, got %q", got)
	}
}

// TestSweepCmdMarkdownToFile tests report output to a file.
func TestSweepCmdMarkdownToFile(t *testing.T) {
	t.Parallel()

	port := startSweepServer(t, 1)
	output := filepath.Join(t.TempDir(), "reports", "sweep.md")

	_, err := runCommand(t,
		"sweep", "127.0.0.1", "/",
		"--port", strconv.Itoa(port),
		"--timeout", "5s",
		"--output", output,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("report file was not written: %v", err)
	}
	if !strings.Contains(string(content), "# RedFox Sweep Report") {
		t.Errorf("report file lacks the header:\n%s", content)
	}
}

// TestSweepCmdRecordsFailures tests that dead paths stay in the report.
func TestSweepCmdRecordsFailures(t *testing.T) {
	t.Parallel()

	// Bind and release a port so every probe is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	if err := ln.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t,
		"sweep", "127.0.0.1", "/", "/admin",
		"--port", strconv.Itoa(port),
		"--timeout", "2s",
		"--format", "yaml",
	)
	if err != nil {
		t.Fatalf("a failing probe should not abort the sweep: %v", err)
	}

	var decoded model.SweepReport
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if len(decoded.Results) != 2 {
		t.Fatalf("got %d results, expected 2", len(decoded.Results))
	}
	for _, r := range decoded.Results {
		if r.Error == "" {
			t.Errorf("expected a recorded failure for %q", r.Target)
		}
	}
}

// TestSweepCmdUnknownFormat tests format validation.
func TestSweepCmdUnknownFormat(t *testing.T) {
	t.Parallel()

	port := startSweepServer(t, 1)

	_, err := runCommand(t,
		"sweep", "127.0.0.1", "/",
		"--port", strconv.Itoa(port),
		"--timeout", "5s",
		"--format", "xml",
	)
	if err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/redfox/internal/inspect"
	"github.com/nao1215/redfox/internal/log"
	"github.com/nao1215/redfox/internal/model"
	"github.com/nao1215/redfox/internal/report"
	"github.com/nao1215/redfox/internal/request"
	"github.com/nao1215/redfox/internal/transport"
	"github.com/nao1215/redfox/internal/urlutil"
)

// Report format names accepted by --format.
const (
	formatMarkdown = "markdown"
	formatYAML     = "yaml"
)

// NewSweepCmd creates the sweep command.
func NewSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [host] [path]...",
		Short: "Probe many paths on one host and report the results",
		Long: `Sweep sends one raw exchange per path against a single host, with
bounded concurrency, and renders the results as a report.

Each probe records the status code, any 301/302 redirect target, the
response size, and the exchange duration. Failed exchanges (refused
ports, dead names, timeouts) are recorded in the report rather than
aborting the sweep.

Redirect targets are kept only when they stay inside the scan scope:
--domain drops targets outside the given domain, and --max-depth drops
targets nested deeper than the given path depth.

Examples:
  # Probe a handful of paths
  redfox sweep rit.edu / /study /admin /server-status

  # TLS sweep with a scope filter and a YAML report
  redfox sweep --port 443 --domain rit.edu --format yaml rit.edu / /login

  # Write a Markdown report to a file
  redfox sweep -o report.md rit.edu / /old /new`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSweepCmd,
	}

	addTargetFlags(cmd)
	addTransportFlags(cmd)

	// Sweep behavior flags
	cmd.Flags().StringP("method", "X", "GET", "Request method for every probe")
	cmd.Flags().IntP("concurrency", "c", 4, "Number of concurrent exchanges")
	cmd.Flags().String("domain", "", "Keep redirect targets only inside this domain")
	cmd.Flags().Int("max-depth", 0, "Drop redirect targets deeper than this path depth (0 = no cap)")

	// Report flags
	cmd.Flags().StringP("format", "f", formatMarkdown, "Report format: markdown or yaml")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")

	return cmd
}

// runSweepCmd executes the sweep command.
func runSweepCmd(cmd *cobra.Command, args []string) error {
	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	host := args[0]
	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{request.DefaultPath}
	}

	tr, err := newTransceiver(cmd, logger)
	if err != nil {
		return err
	}

	method, _ := cmd.Flags().GetString("method")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	domain, _ := cmd.Flags().GetString("domain")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	if concurrency < 1 {
		concurrency = 1
	}

	port, _ := cmd.Flags().GetInt("port")
	useTLS, _ := cmd.Flags().GetBool("tls")
	sweep := model.NewSweepReport(host, port, useTLS || port == 443)

	// One request context per probe: contexts carry the built request,
	// so concurrent probes must not share one.
	results := make([]model.ProbeResult, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = probe(ctx, cmd, tr, host, path, method, domain, maxDepth, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		sweep.Add(result)
	}

	return writeReport(cmd, sweep)
}

// probe performs one exchange and classifies the response.
// Failures are recorded on the result, never returned: one dead path
// must not abort the rest of the sweep.
func probe(ctx context.Context, cmd *cobra.Command, tr *transport.Transceiver,
	host, path, method, domain string, maxDepth int, logger *slog.Logger,
) model.ProbeResult {
	agent, _ := cmd.Flags().GetString("agent")
	port, _ := cmd.Flags().GetInt("port")
	useTLS, _ := cmd.Flags().GetBool("tls")

	rc := request.NewContext(host,
		request.WithPath(path),
		request.WithPort(port),
		request.WithUserAgent(agent),
		request.WithTLS(useTLS),
	)
	request.Build(rc, request.WithMethod(method))

	result := model.ProbeResult{
		URL:    rc.URL(),
		Target: path,
	}

	start := time.Now()
	resp, err := tr.Execute(ctx, rc)
	result.Elapsed = time.Since(start)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.ResponseBytes = len(resp.Raw)
	result.Decoded = resp.Decoded

	text := resp.String()
	if code, err := inspect.StatusCode(text); err == nil {
		result.StatusCode = code
		if reason, ok := inspect.StatusText(code); ok {
			result.Reason = reason
		}
	}

	if location, status := inspect.RedirectLocation(text); status == inspect.RedirectFound {
		result.Redirect = filterRedirect(location, domain, maxDepth, logger)
	}

	return result
}

// filterRedirect applies the scope filters to a harvested redirect
// target and returns it, or empty when it falls out of scope.
func filterRedirect(location, domain string, maxDepth int, logger *slog.Logger) string {
	if domain != "" && !urlutil.InDomain(location, domain) {
		logger.Debug("redirect target outside domain",
			slog.String("location", location),
			slog.String("domain", domain))
		return ""
	}
	if maxDepth > 0 && urlutil.Depth(location) > maxDepth {
		logger.Debug("redirect target too deep",
			slog.String("location", location),
			slog.Int("max_depth", maxDepth))
		return ""
	}
	return location
}

// writeReport renders the sweep report per the report flags.
func writeReport(cmd *cobra.Command, sweep *model.SweepReport) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	var dest io.Writer = cmd.OutOrStdout()
	if output != "" {
		if dir := filepath.Dir(output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		dest = file
	}

	var writer report.Writer
	switch format {
	case formatMarkdown:
		writer = report.NewMarkdownWriter(dest)
	case formatYAML:
		writer = report.NewYAMLWriter(dest)
	default:
		return fmt.Errorf("unknown report format %q (want %s or %s)", format, formatMarkdown, formatYAML)
	}

	_, err := writer.Write(sweep)
	return err
}

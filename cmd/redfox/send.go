package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/redfox/internal/inspect"
	"github.com/nao1215/redfox/internal/log"
	"github.com/nao1215/redfox/internal/request"
	"github.com/nao1215/redfox/internal/transport"
)

// NewSendCmd creates the send command.
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [host]",
		Short: "Send one hand-crafted HTTP/1.1 request",
		Long: `Send builds a literal HTTP/1.1 request, transmits it over a fresh
socket, and prints the raw response to stdout.

The request is sent exactly as built: fixed header order, no validation
of the method or any other parameter, and (by default) the full absolute
URL in the request line. The response is read until the peer closes the
connection.

Examples:
  # Plain GET against a host
  redfox send rit.edu

  # TLS on port 443 is automatic
  redfox send --port 443 rit.edu

  # POST a form body (form-encoded before transmission)
  redfox send --method POST --path /login --body "user=admin&pass=x" rit.edu

  # Route through Tor's SOCKS5 proxy
  redfox send --proxy 127.0.0.1:9050 exampleonion.onion

  # Show the request bytes before sending
  redfox send --show-request rit.edu`,
		Args: cobra.ExactArgs(1),
		RunE: runSendCmd,
	}

	addTargetFlags(cmd)
	addTransportFlags(cmd)
	cmd.Flags().StringP("path", "p", request.DefaultPath, "Resource path")

	// Request construction flags
	cmd.Flags().StringP("method", "X", "GET", "Request method (sent verbatim, not validated)")
	cmd.Flags().String("target", "", "Request-line target override (default: the absolute URL)")
	cmd.Flags().StringP("body", "d", "", "Request body (form-encoded before transmission)")
	cmd.Flags().String("connection", "close", "Connection header value")
	cmd.Flags().Bool("show-request", false, "Print the request bytes before sending")

	// Response assertion flag
	cmd.Flags().String("expect", "", `Fail unless this status string (e.g. "200 OK") occurs in the response`)

	return cmd
}

// addTargetFlags registers the target flags shared by send and sweep.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().Int("port", request.DefaultPort, "Target port (443 forces TLS)")
	cmd.Flags().StringP("agent", "A", request.DefaultUserAgent, "User-Agent header value")
	cmd.Flags().Bool("tls", false, "Use TLS regardless of port")
}

// addTransportFlags registers the transport flags shared by send and sweep.
func addTransportFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("insecure", false, "Skip TLS certificate verification")
	cmd.Flags().DurationP("timeout", "t", 0, "Exchange timeout (0 blocks until the peer closes)")
	cmd.Flags().String("encoding", transport.DefaultEncoding, "Charset for the request and response")
	cmd.Flags().Bool("no-decode", false, "Return the response bytes without decoding")
	cmd.Flags().String("proxy", "", "SOCKS5 proxy address (e.g. 127.0.0.1:9050)")
}

// newTransceiver builds a Transceiver from the shared exchange flags.
func newTransceiver(cmd *cobra.Command, logger *slog.Logger) (*transport.Transceiver, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	encoding, _ := cmd.Flags().GetString("encoding")
	noDecode, _ := cmd.Flags().GetBool("no-decode")
	insecure, _ := cmd.Flags().GetBool("insecure")
	proxyAddr, _ := cmd.Flags().GetString("proxy")

	opts := []transport.Option{
		transport.WithTimeout(timeout),
		transport.WithEncoding(encoding),
		transport.WithDecode(!noDecode),
		transport.WithInsecureTLS(insecure),
		transport.WithLogger(logger),
	}

	if proxyAddr != "" {
		dialer, err := transport.NewSOCKS5Dialer(proxyAddr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, transport.WithDialer(dialer))
	}

	return transport.New(opts...), nil
}

// newRequestContext builds a request context for the given host from the
// shared exchange flags.
func newRequestContext(cmd *cobra.Command, host string) *request.Context {
	path, _ := cmd.Flags().GetString("path")
	port, _ := cmd.Flags().GetInt("port")
	agent, _ := cmd.Flags().GetString("agent")
	useTLS, _ := cmd.Flags().GetBool("tls")

	return request.NewContext(host,
		request.WithPath(path),
		request.WithPort(port),
		request.WithUserAgent(agent),
		request.WithTLS(useTLS),
	)
}

// runSendCmd executes the send command.
func runSendCmd(cmd *cobra.Command, args []string) error {
	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	rc := newRequestContext(cmd, args[0])

	method, _ := cmd.Flags().GetString("method")
	target, _ := cmd.Flags().GetString("target")
	body, _ := cmd.Flags().GetString("body")
	connection, _ := cmd.Flags().GetString("connection")

	built := request.Build(rc,
		request.WithMethod(method),
		request.WithTarget(target),
		request.WithConnection(connection),
		request.WithBody(body),
	)

	if show, _ := cmd.Flags().GetBool("show-request"); show {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", built)
	}

	tr, err := newTransceiver(cmd, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := tr.Execute(cmd.Context(), rc)
	if err != nil {
		return err
	}

	if description, derr := inspect.Describe(resp.String()); derr == nil {
		logger.Info("exchange complete",
			slog.String("status", description),
			slog.Int("bytes", len(resp.Raw)),
			slog.Duration("elapsed", time.Since(start)))
	}

	if resp.Decoded {
		fmt.Fprint(cmd.OutOrStdout(), resp.Text)
	} else {
		// Decode declined or failed: emit the raw bytes untouched.
		if _, err := cmd.OutOrStdout().Write(resp.Raw); err != nil {
			return err
		}
	}

	// The check is a substring search over the whole response, same as
	// the rest of the inspection helpers.
	if expect, _ := cmd.Flags().GetString("expect"); expect != "" {
		if !inspect.ContainsStatus(resp.String(), expect) {
			return fmt.Errorf("response does not contain status %q", expect)
		}
	}

	return nil
}

package transport

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Connection-layer errors.
// These errors are returned when an exchange fails before any response
// byte arrives.
//
// Design decision: we define specific sentinel errors rather than
// wrapping all failures generically. A refused port and an unresolvable
// host mean very different things to a security scan (closed service vs.
// typo or dead domain), and callers need to tell them apart with
// errors.Is without string matching.
var (
	// ErrConnectionRefused is returned when the peer actively rejected
	// the connection. The port is reachable but nothing is listening,
	// or a firewall sent a reset.
	ErrConnectionRefused = errors.New("connection refused by target")

	// ErrNameResolution is returned when the target host cannot be
	// resolved. This usually means a typo in the host or a domain that
	// no longer exists.
	ErrNameResolution = errors.New("cannot resolve target host")

	// ErrDialTimeout is returned when the connection attempt exceeded
	// the configured timeout.
	ErrDialTimeout = errors.New("timeout connecting to target")

	// ErrDialFailed is returned for connection failures outside the
	// more specific categories above.
	ErrDialFailed = errors.New("cannot connect to target")

	// ErrNoRequest is returned when Execute runs on a context that has
	// no built request. Call request.Build first.
	ErrNoRequest = errors.New("no request has been built for this context")

	// ErrUnknownEncoding is returned when the configured charset name
	// is not in the IANA index.
	ErrUnknownEncoding = errors.New("unknown encoding name")

	// ErrInvalidProxyAddress is returned when a SOCKS5 proxy address is
	// not in "host:port" format.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)

// DialStatus classifies how a connection attempt ended. The enum allows
// for easy status reporting and programmatic handling of the different
// failure modes.
type DialStatus int

const (
	// DialOK indicates the connection was established.
	DialOK DialStatus = iota

	// DialRefused indicates the peer actively rejected the connection.
	DialRefused

	// DialNoSuchHost indicates the host name could not be resolved.
	DialNoSuchHost

	// DialTimeout indicates the attempt exceeded its deadline.
	DialTimeout

	// DialFailed indicates any other connection failure.
	DialFailed
)

// String returns a human-readable description of the dial status.
func (s DialStatus) String() string {
	switch s {
	case DialOK:
		return "OK"
	case DialRefused:
		return "connection refused"
	case DialNoSuchHost:
		return "no such host"
	case DialTimeout:
		return "timeout"
	case DialFailed:
		return "dial failed"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error for this status, or nil if OK.
func (s DialStatus) Err() error {
	switch s {
	case DialOK:
		return nil
	case DialRefused:
		return ErrConnectionRefused
	case DialNoSuchHost:
		return ErrNameResolution
	case DialTimeout:
		return ErrDialTimeout
	default:
		return ErrDialFailed
	}
}

// classifyDialError maps a dial error onto a DialStatus.
//
// DNS failures are checked before timeouts because *net.DNSError also
// implements net.Error and may report IsTimeout for slow resolvers; the
// name-resolution classification is the more useful one for callers.
func classifyDialError(err error) DialStatus {
	if err == nil {
		return DialOK
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DialNoSuchHost
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return DialRefused
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return DialTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return DialTimeout
	}

	return DialFailed
}

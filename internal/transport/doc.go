// Package transport transmits pre-built HTTP/1.1 requests over raw
// stream sockets and collects the raw response.
//
// One Transceiver.Execute call owns one socket for its whole lifecycle:
// connect, optional TLS handshake, send, read until the peer closes,
// close. There is no connection reuse, no pooling, and no retry - each
// exchange is independent, which also means concurrent exchanges are
// safe without any coordination here.
//
// Design decision: the receive loop reads until EOF rather than honoring
// Content-Length or chunked framing because:
//  1. The request layer sends Connection: close by default, so EOF is
//     the natural end-of-response signal
//  2. Framing-aware reads would require parsing the response, and this
//     client's contract is to return exactly the bytes the peer sent
//  3. Servers that misreport lengths are part of what the client exists
//     to observe
//
// The cost is explicit: a peer that keeps the connection open without
// closing will hang the call unless a timeout was configured.
//
// Connections can optionally be routed through a SOCKS5 proxy (Tor, an
// intercepting proxy) via a dialer from NewSOCKS5Dialer.
package transport

// Package request builds literal HTTP/1.1 requests for transmission over
// raw sockets.
//
// Unlike net/http, nothing here is normalized, validated, or reordered:
// the bytes produced by Build are exactly the bytes that go on the wire.
// This is deliberate. The package exists for security research where the
// interesting cases are precisely the requests an HTTP library would
// refuse to send or would quietly rewrite.
//
// Design decision: we keep request construction separate from transmission
// (package transport) because:
//  1. Building is pure and trivially testable byte-for-byte
//  2. A built request can be inspected or logged before anything is sent
//  3. The transmission side can be swapped (direct, TLS, SOCKS5 proxy)
//     without touching request formatting
//
// The caller is trusted completely. Methods, connection tokens, and bodies
// are not checked for CRLF injection or any other malformation - sending
// malformed requests is a supported use case, not an error.
package request

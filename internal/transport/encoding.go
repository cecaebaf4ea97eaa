package transport

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// lookupEncoding resolves an IANA charset name ("utf-8", "iso-8859-1",
// "shift_jis", ...) to its x/text encoding. Aliases from the IANA
// registry are accepted.
func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// encodeText converts request text into the charset's byte form.
// UTF-8 is the identity transform and is short-circuited.
func encodeText(s, name string) ([]byte, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return []byte(s), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode request as %s: %w", name, err)
	}
	return out, nil
}

// decodeBytes converts received bytes into text under the given charset.
//
// For UTF-8 the bytes are validated rather than transformed: x/text
// decoders substitute U+FFFD for bad input, which would silently corrupt
// a response we promised to return verbatim. An invalid response is a
// decode failure and the caller falls back to the raw bytes.
func decodeBytes(data []byte, name string) (string, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	if enc == unicode.UTF8 {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("response is not valid UTF-8")
		}
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode response as %s: %w", name, err)
	}
	return string(out), nil
}

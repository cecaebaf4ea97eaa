// Package urlutil provides the small URL classifications a crawl loop
// built on raw exchanges needs: how deep a URL sits below its host, and
// whether it stays inside a target domain.
package urlutil

import "strings"

// Depth returns how many path segments deep a URL is below its host.
// "http://rit.edu/study/undergraduate" has depth 2 and "http://rit.edu/"
// has depth 0. A trailing slash does not add a level.
//
// For inputs without an http or https scheme the count is taken from the
// first segment instead, so "study/undergraduate" has depth 1.
func Depth(rawURL string) int {
	segments := strings.Split(rawURL, "/")
	if segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}

	// Absolute URLs burn three segments on "scheme:", the empty segment
	// between the slashes, and the host itself.
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return len(segments) - 3
	}
	return len(segments) - 1
}

// InDomain reports whether the URL stays inside the given domain.
// "http://library.rit.edu/x" is inside "rit.edu"; "http://apple.com" is
// not. The check is substring containment, which is intentionally
// permissive: subdomains match, but so does the domain appearing
// anywhere else in the URL. Scope filters for a crawl want to
// over-include rather than wander off target.
func InDomain(rawURL, domain string) bool {
	return strings.Contains(rawURL, domain)
}

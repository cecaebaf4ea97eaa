// Package main provides the entry point for the RedFox CLI.
//
// RedFox sends hand-crafted HTTP/1.1 requests over raw sockets for
// security research. Nothing is normalized and nothing is retried:
// what you specify is what goes on the wire, and what the peer sends
// is what you get back.
//
// Usage:
//
//	redfox send <host>
//	redfox sweep <host> <path>...
//
// See --help for all available options.
package main

// main is the entry point for RedFox.
func main() {
	Execute()
}

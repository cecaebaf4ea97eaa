// Package report renders sweep results for humans and for tools.
//
// Two formats are provided: Markdown for documentation and sharing, and
// YAML for programmatic consumption. Both implement the same Writer
// interface, and MultiWriter fans one report out to several destinations
// (typically terminal plus file).
package report

// Package model defines the value types shared between the sweep
// runner and the report writers.
//
// These are plain data carriers: the sweep command fills them in, the
// report package renders them. Keeping them in their own package avoids
// an import cycle between the two and keeps serialization tags in one
// place.
package model

// Package diag defines the issue model shared by the lexer, parser and
// diagnostic tree.
//
// ErrorKind is the closed enumeration of problems. Every kind maps to exactly
// one Rule (stable id plus default message) through ErrorKind.Issue; the switch
// is exhaustive and AllErrorKinds lets tests verify that. Rule ids are what
// configuration files and editors refer to.
//
// A Marker is an ErrorKind positioned in the source (byte Offset and Length)
// with a Level and an optional specific Message. Levels come from
// DefaultLevel unless a Levels override says otherwise.
//
// Bag aggregates markers with an optional cap, and supports sorting and
// deduplication. Rendering lives in internal/diagfmt; FormatGoldenMarkers is
// the one stable textual form kept here because tests of several packages
// compare against it.
package diag

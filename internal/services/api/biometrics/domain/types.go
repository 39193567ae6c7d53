// Package domain holds the biometrics types, wire DTOs and service contract
package domain

// MaxTemplateBytes bounds a decoded template, larger input is rejected
const MaxTemplateBytes = 2048

// DefaultThreshold is the score a match must reach
const DefaultThreshold = 60

// Sample is one successful acquisition
type Sample struct {
	Image    []byte
	Template []byte
}

// Entry is one identify candidate as received. ID is checked against the
// driver's 32 bit id range by the service, -1 marks an unparseable id
type Entry struct {
	ID       int64
	Template string
}

// MatchResult is the outcome of verify or identify.
// ID is only set by identify on a match
type MatchResult struct {
	Matched bool
	Score   int
	ID      *uint32
}

// NoMatch is the degraded result for empty input and capture failures
var NoMatch = MatchResult{}

// SelfTest reports two back to back captures of one finger scored against each other
type SelfTest struct {
	ABytes int
	BBytes int
	Score  int
}

// Info describes the session
type Info struct {
	Ready  bool
	Width  int
	Height int
}

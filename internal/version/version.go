// Package version implements the project version arithmetic used by every
// git-flow transition: parsing, validation, release/snapshot conversion and
// digit-indexed increments.
//
// A version is a list of dot-separated numeric digit groups followed by an
// optional qualifier and an optional SNAPSHOT marker:
//
//	1.2.0            digits [1 2 0]
//	0.9-RC3-SNAPSHOT digits [0 9], qualifier "RC3", snapshot
//	trunk-SNAPSHOT   no digits, qualifier "trunk", snapshot
//
// Info values are immutable; every operation returns a new string or Info.
// Operations that may be overridden by a version policy live on Calculator.
package version

import (
	"fmt"
	"regexp"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// Snapshot is the marker for not-yet-released versions.
const Snapshot = "SNAPSHOT"

// NoIndex selects the default increment in NextVersion. Any index outside
// [0, digit count) behaves the same way.
const NoIndex = -1

var (
	// standardPattern: digit groups followed by a qualifier/build suffix.
	standardPattern = regexp.MustCompile(`^((?:\d+\.)*\d+)([-_.+a-zA-Z0-9]*)$`)

	// alternatePattern: snapshot-only versions without digits (SNAPSHOT, trunk-SNAPSHOT).
	alternatePattern = regexp.MustCompile(`^(?:SNAPSHOT|[a-zA-Z]+[-_]SNAPSHOT)$`)
)

// Info is a parsed project version.
type Info struct {
	digits    []string
	sep       string // separator between digits and qualifier as written
	qualifier string
	snapshot  bool
	snapSep   string // separator before the snapshot marker as written
	snapText  string // snapshot marker as written (case preserved)
}

// IsValid reports whether s matches one of the recognized version patterns.
func IsValid(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	return alternatePattern.MatchString(s) || standardPattern.MatchString(s)
}

// Parse parses a version string.
func Parse(s string) (Info, error) {
	if strings.TrimSpace(s) == "" {
		return Info{}, gferrors.ErrBlankVersion
	}

	if alternatePattern.MatchString(s) {
		v := Info{}
		v.parseSuffix(s)
		return v, nil
	}

	m := standardPattern.FindStringSubmatch(s)
	if m == nil {
		return Info{}, fmt.Errorf("%q: %w", s, gferrors.ErrVersionFormat)
	}

	v := Info{digits: strings.Split(m[1], ".")}
	v.parseSuffix(m[2])
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Info {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// parseSuffix splits everything after the digit groups into qualifier and snapshot marker.
func (v *Info) parseSuffix(rest string) {
	if n := len(rest); n >= len(Snapshot) && strings.EqualFold(rest[n-len(Snapshot):], Snapshot) {
		v.snapshot = true
		v.snapText = rest[n-len(Snapshot):]
		rest = rest[:n-len(Snapshot)]
		if rest != "" && isSeparator(rest[len(rest)-1]) {
			v.snapSep = rest[len(rest)-1:]
			rest = rest[:len(rest)-1]
		}
	}

	if len(v.digits) > 0 && rest != "" && isSeparator(rest[0]) {
		v.sep = rest[:1]
		rest = rest[1:]
	}
	v.qualifier = rest
}

func isSeparator(c byte) bool {
	return c == '-' || c == '_'
}

// String reconstructs the version exactly as it was written.
func (v Info) String() string {
	var b strings.Builder
	b.WriteString(v.releaseString())
	if v.snapshot {
		b.WriteString(v.snapSep)
		b.WriteString(v.snapText)
	}
	return b.String()
}

func (v Info) releaseString() string {
	return strings.Join(v.digits, ".") + v.sep + v.qualifier
}

// Digits returns a copy of the numeric digit groups.
func (v Info) Digits() []string {
	return append([]string(nil), v.digits...)
}

// Qualifier returns the qualifier between the digits and the snapshot marker.
func (v Info) Qualifier() string {
	return v.qualifier
}

// IsSnapshot reports whether the version carries the SNAPSHOT marker.
func (v Info) IsSnapshot() bool {
	return v.snapshot
}

// IsNumeric reports whether the version has at least one digit group.
func (v Info) IsNumeric() bool {
	return len(v.digits) > 0
}

// ReleaseVersionString returns the version without its snapshot marker.
func (v Info) ReleaseVersionString() string {
	return v.releaseString()
}

// SnapshotVersionString returns the release version with a -SNAPSHOT suffix.
func (v Info) SnapshotVersionString() string {
	release := v.releaseString()
	if release == "" {
		return Snapshot
	}
	return release + "-" + Snapshot
}

// DigitsOnly returns a version built from the digit groups alone.
func (v Info) DigitsOnly() Info {
	return Info{digits: v.Digits()}
}

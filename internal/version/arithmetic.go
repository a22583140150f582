package version

import (
	"math/big"
	"strings"
)

// NextVersion returns the version with one digit group incremented.
//
// With a valid index the digit at that position is incremented and every
// digit after it is reset to zero. Otherwise the last digit group is
// incremented. The qualifier is kept verbatim in both cases.
//
// The result ends with -SNAPSHOT iff wantSnapshot. Versions without digits
// cannot be incremented and only have their snapshot marker toggled.
func (v Info) NextVersion(index int, wantSnapshot bool) string {
	if !v.IsNumeric() {
		return v.withSnapshot(wantSnapshot)
	}

	next := v.Digits()
	if index < 0 || index >= len(next) {
		index = len(next) - 1
	}
	next[index] = incrementDigit(next[index])
	for i := index + 1; i < len(next); i++ {
		next[i] = "0"
	}

	out := Info{digits: next, sep: v.sep, qualifier: v.qualifier}
	return out.withSnapshot(wantSnapshot)
}

// NextSnapshotVersion is NextVersion(index, true).
func (v Info) NextSnapshotVersion(index int) string {
	return v.NextVersion(index, true)
}

// HotfixVersion computes the version of a new hotfix from the production
// version. The snapshot marker survives only when preserveSnapshot is set and
// the version already is a snapshot.
func (v Info) HotfixVersion(preserveSnapshot bool, index int) string {
	return v.NextVersion(index, preserveSnapshot && v.snapshot)
}

// FeatureVersion inserts a feature name between release version and snapshot
// marker: 0.9-SNAPSHOT with "feature" becomes 0.9-feature-SNAPSHOT. An empty
// name leaves the version unchanged.
func (v Info) FeatureVersion(name string) string {
	if name == "" {
		return v.String()
	}
	out := v.ReleaseVersionString() + "-" + name
	if v.snapshot {
		out += "-" + Snapshot
	}
	return out
}

// Compare orders versions by digit groups (numerically, missing groups count
// as zero), then by qualifier (a release sorts after any qualifier), then by
// snapshot marker (a snapshot sorts before the release). It returns -1, 0 or 1.
func Compare(a, b Info) int {
	n := max(len(a.digits), len(b.digits))
	for i := range n {
		if c := compareDigit(digitAt(a.digits, i), digitAt(b.digits, i)); c != 0 {
			return c
		}
	}

	switch {
	case a.qualifier == b.qualifier:
	case a.qualifier == "":
		return 1
	case b.qualifier == "":
		return -1
	default:
		return strings.Compare(a.qualifier, b.qualifier)
	}

	switch {
	case a.snapshot == b.snapshot:
		return 0
	case a.snapshot:
		return -1
	default:
		return 1
	}
}

func (v Info) withSnapshot(snapshot bool) string {
	if snapshot {
		return v.SnapshotVersionString()
	}
	return v.ReleaseVersionString()
}

// incrementDigit adds one to a decimal digit group, keeping leading zeros:
// "09" becomes "10", "007" becomes "008".
func incrementDigit(s string) string {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return s
	}
	out := n.Add(n, big.NewInt(1)).String()
	if len(out) < len(s) {
		out = strings.Repeat("0", len(s)-len(out)) + out
	}
	return out
}

func digitAt(digits []string, i int) string {
	if i < len(digits) {
		return digits[i]
	}
	return "0"
}

func compareDigit(a, b string) int {
	x, okA := new(big.Int).SetString(a, 10)
	y, okB := new(big.Int).SetString(b, 10)
	if !okA || !okB {
		return strings.Compare(a, b)
	}
	return x.Cmp(y)
}

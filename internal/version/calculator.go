package version

import (
	"fmt"
	"strings"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// Calculator applies the version arithmetic with an optional Policy.
// The zero value has no policy and behaves exactly like the Info methods.
type Calculator struct {
	policy Policy
}

// NewCalculator returns a Calculator delegating to p. A nil p disables delegation.
func NewCalculator(p Policy) Calculator {
	return Calculator{policy: p}
}

// NewCalculatorFor resolves policyID through the registry.
func NewCalculatorFor(policyID string) (Calculator, error) {
	p, err := Lookup(policyID)
	if err != nil {
		return Calculator{}, err
	}
	return NewCalculator(p), nil
}

// HasPolicy reports whether a policy is configured.
func (c Calculator) HasPolicy() bool {
	return c.policy != nil
}

// ReleaseVersion returns the release form of v.
func (c Calculator) ReleaseVersion(v Info) (string, error) {
	if c.policy == nil {
		return v.ReleaseVersionString(), nil
	}
	out, err := c.policy.ReleaseVersion(v.String())
	return checkBlank(out, err, "release version of %s", v)
}

// NextVersion returns the next version of v. A configured policy ignores index
// and decides about the snapshot marker itself.
func (c Calculator) NextVersion(v Info, index int, wantSnapshot bool) (string, error) {
	if c.policy == nil {
		return v.NextVersion(index, wantSnapshot), nil
	}
	out, err := c.policy.DevelopmentVersion(v.String())
	return checkBlank(out, err, "next version of %s", v)
}

// NextSnapshotVersion is NextVersion(v, index, true).
func (c Calculator) NextSnapshotVersion(v Info, index int) (string, error) {
	return c.NextVersion(v, index, true)
}

// HotfixVersion is NextVersion(v, index, preserveSnapshot && v.IsSnapshot()).
func (c Calculator) HotfixVersion(v Info, preserveSnapshot bool, index int) (string, error) {
	return c.NextVersion(v, index, preserveSnapshot && v.IsSnapshot())
}

// FeatureVersion inserts name between the release version and the snapshot marker.
func (c Calculator) FeatureVersion(v Info, name string) (string, error) {
	if name == "" {
		return v.String(), nil
	}
	release, err := c.ReleaseVersion(v)
	if err != nil {
		return "", err
	}
	out := release + "-" + name
	if v.IsSnapshot() {
		out += "-" + Snapshot
	}
	return out, nil
}

func checkBlank(out string, err error, format string, args ...any) (string, error) {
	if err != nil {
		return "", gferrors.Wrapf(err, format, args...)
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), gferrors.ErrBlankVersion)
	}
	return out, nil
}

package version

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

// Policy overrides the default release and development version computation.
type Policy interface {
	// ReleaseVersion returns the release version for the given version.
	ReleaseVersion(current string) (string, error)
	// DevelopmentVersion returns the next development version after the given version.
	DevelopmentVersion(current string) (string, error)
}

// Built-in policy ids.
const (
	PolicySemVer  = "semver"
	PolicyOddEven = "odd-even"
)

//nolint:gochecknoglobals // Process-wide registry populated at init
var (
	registryMu sync.RWMutex
	registry   = map[string]Policy{
		PolicySemVer:  semVerPolicy{},
		PolicyOddEven: oddEvenPolicy{},
	}
)

// Register adds a policy under id, replacing any previous registration.
func Register(id string, p Policy) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = p
}

// Lookup resolves a policy id. An empty id means no policy and returns nil.
func Lookup(id string) (Policy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil //nolint:nilnil // no policy configured
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%q (known: %s): %w", id, strings.Join(policyIDsLocked(), ", "), gferrors.ErrUnknownVersionPolicy)
	}
	return p, nil
}

// PolicyIDs returns the registered policy ids in sorted order.
func PolicyIDs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return policyIDsLocked()
}

func policyIDsLocked() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// semVerPolicy releases MAJOR.MINOR.PATCH and continues development on the
// next minor version. Missing minor and patch numbers count as 0.
type semVerPolicy struct{}

func (semVerPolicy) ReleaseVersion(current string) (string, error) {
	v, err := parseSemVer(current)
	if err != nil {
		return "", err
	}
	return semVerCore(v), nil
}

func (semVerPolicy) DevelopmentVersion(current string) (string, error) {
	v, err := parseSemVer(current)
	if err != nil {
		return "", err
	}
	next := v.IncMinor()
	return semVerCore(&next) + "-" + Snapshot, nil
}

func parseSemVer(current string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(current))
	if err != nil {
		return nil, fmt.Errorf("%q is not a semantic version: %w: %w", current, err, gferrors.ErrVersionFormat)
	}
	return v, nil
}

func semVerCore(v *semver.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// oddEvenPolicy releases even versions and develops on odd ones:
// 1.1-SNAPSHOT releases as 1.2 and continues as 1.3-SNAPSHOT.
type oddEvenPolicy struct{}

func (oddEvenPolicy) ReleaseVersion(current string) (string, error) {
	digits, err := evenDigits(current)
	if err != nil {
		return "", err
	}
	return strings.Join(digits, "."), nil
}

func (oddEvenPolicy) DevelopmentVersion(current string) (string, error) {
	digits, err := evenDigits(current)
	if err != nil {
		return "", err
	}
	last := len(digits) - 1
	digits[last] = incrementDigit(digits[last])
	return strings.Join(digits, ".") + "-" + Snapshot, nil
}

func evenDigits(current string) ([]string, error) {
	v, err := Parse(current)
	if err != nil {
		return nil, err
	}
	if !v.IsNumeric() {
		return nil, fmt.Errorf("%q has no numeric part: %w", current, gferrors.ErrVersionFormat)
	}
	digits := v.Digits()
	last := len(digits) - 1
	if isOdd(digits[last]) {
		digits[last] = incrementDigit(digits[last])
	}
	return digits, nil
}

func isOdd(digit string) bool {
	if digit == "" {
		return false
	}
	return (digit[len(digit)-1]-'0')%2 == 1
}

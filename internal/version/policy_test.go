package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

type stubPolicy struct {
	release string
	dev     string
}

func (s stubPolicy) ReleaseVersion(string) (string, error)     { return s.release, nil }
func (s stubPolicy) DevelopmentVersion(string) (string, error) { return s.dev, nil }

func TestLookup(t *testing.T) {
	p, err := Lookup("")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = Lookup(PolicySemVer)
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = Lookup("calver")
	require.ErrorIs(t, err, gferrors.ErrUnknownVersionPolicy)
	require.ErrorIs(t, err, gferrors.ErrConfiguration)
	assert.Contains(t, err.Error(), "odd-even")
}

func TestRegister(t *testing.T) {
	Register("test-fixed", stubPolicy{release: "9.9", dev: "10.0-SNAPSHOT"})
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, "test-fixed")
		registryMu.Unlock()
	})

	assert.Contains(t, PolicyIDs(), "test-fixed")

	c, err := NewCalculatorFor("test-fixed")
	require.NoError(t, err)
	assert.True(t, c.HasPolicy())

	got, err := c.NextVersion(MustParse("1.0"), 0, false)
	require.NoError(t, err)
	assert.Equal(t, "10.0-SNAPSHOT", got, "policy ignores index")
}

func TestSemVerPolicy(t *testing.T) {
	c, err := NewCalculatorFor(PolicySemVer)
	require.NoError(t, err)

	tests := []struct {
		input   string
		release string
		next    string
	}{
		{"1.2.3-SNAPSHOT", "1.2.3", "1.3.0-SNAPSHOT"},
		{"1.2", "1.2.0", "1.3.0-SNAPSHOT"},
		{"2.0.0-RC1", "2.0.0", "2.1.0-SNAPSHOT"},
		{"3", "3.0.0", "3.1.0-SNAPSHOT"},
		{"1.9.2-RC3-feature-SNAPSHOT", "1.9.2", "1.10.0-SNAPSHOT"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			v := MustParse(tc.input)

			release, err := c.ReleaseVersion(v)
			require.NoError(t, err)
			assert.Equal(t, tc.release, release)

			next, err := c.NextSnapshotVersion(v, NoIndex)
			require.NoError(t, err)
			assert.Equal(t, tc.next, next)
		})
	}

	_, err = c.ReleaseVersion(MustParse("trunk-SNAPSHOT"))
	require.ErrorIs(t, err, gferrors.ErrVersionFormat)
}

func TestOddEvenPolicy(t *testing.T) {
	c, err := NewCalculatorFor(PolicyOddEven)
	require.NoError(t, err)

	release, err := c.ReleaseVersion(MustParse("1.1-SNAPSHOT"))
	require.NoError(t, err)
	assert.Equal(t, "1.2", release)

	release, err = c.ReleaseVersion(MustParse("1.4"))
	require.NoError(t, err)
	assert.Equal(t, "1.4", release)

	next, err := c.NextSnapshotVersion(MustParse("1.2"), NoIndex)
	require.NoError(t, err)
	assert.Equal(t, "1.3-SNAPSHOT", next)

	next, err = c.NextSnapshotVersion(MustParse("1.3"), NoIndex)
	require.NoError(t, err)
	assert.Equal(t, "1.5-SNAPSHOT", next)
}

func TestCalculator_NoPolicy(t *testing.T) {
	var c Calculator
	assert.False(t, c.HasPolicy())

	v := MustParse("0.58")

	next, err := c.NextVersion(v, NoIndex, true)
	require.NoError(t, err)
	assert.Equal(t, "0.59-SNAPSHOT", next)

	next, err = c.NextVersion(v, 0, true)
	require.NoError(t, err)
	assert.Equal(t, "1.0-SNAPSHOT", next)

	hotfix, err := c.HotfixVersion(MustParse("1.0-SNAPSHOT"), true, NoIndex)
	require.NoError(t, err)
	assert.Equal(t, "1.1-SNAPSHOT", hotfix)

	feature, err := c.FeatureVersion(MustParse("0.9-SNAPSHOT"), "feature")
	require.NoError(t, err)
	assert.Equal(t, "0.9-feature-SNAPSHOT", feature)

	feature, err = c.FeatureVersion(MustParse("0.9-RC3"), "")
	require.NoError(t, err)
	assert.Equal(t, "0.9-RC3", feature)
}

func TestCalculator_FeatureVersionUsesPolicyRelease(t *testing.T) {
	c := NewCalculator(stubPolicy{release: "2.0", dev: "2.1-SNAPSHOT"})

	got, err := c.FeatureVersion(MustParse("1.9-SNAPSHOT"), "x")
	require.NoError(t, err)
	assert.Equal(t, "2.0-x-SNAPSHOT", got)
}

func TestCalculator_BlankPolicyResult(t *testing.T) {
	c := NewCalculator(stubPolicy{release: " ", dev: ""})

	_, err := c.ReleaseVersion(MustParse("1.0"))
	require.ErrorIs(t, err, gferrors.ErrBlankVersion)

	_, err = c.NextVersion(MustParse("1.0"), NoIndex, true)
	require.ErrorIs(t, err, gferrors.ErrBlankVersion)
}

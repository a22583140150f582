package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gferrors "github.com/gitflow-tools/gitflow/internal/errors"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"0.9", true},
		{"1.2.3", true},
		{"some-SNAPSHOT", true},
		{"SNAPSHOT", true},
		{"0.9-RC3-feature-SNAPSHOT", true},
		{"1.0_beta", true},
		{"", false},
		{" ", false},
		{"-1", false},
		{"some.0.9", false},
		{"1.0 beta", false},
		{"v1.0", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValid(tc.input))
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"0.9",
		"0.58",
		"1.2.3-SNAPSHOT",
		"0.9-RC3",
		"0.9-RC3-feature-SNAPSHOT",
		"1.0_snapshot",
		"1.0.RELEASE",
		"2.0_beta-SNAPSHOT",
		"some-SNAPSHOT",
		"SNAPSHOT",
		"007.010",
	}

	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			v, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, v.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("")
	require.ErrorIs(t, err, gferrors.ErrBlankVersion)

	_, err = Parse("  ")
	require.ErrorIs(t, err, gferrors.ErrBlankVersion)

	_, err = Parse("some.0.9")
	require.ErrorIs(t, err, gferrors.ErrVersionFormat)
	require.ErrorIs(t, err, gferrors.ErrVersionComputation)
}

func TestParse_Components(t *testing.T) {
	v := MustParse("0.9-RC3-feature-SNAPSHOT")
	assert.Equal(t, []string{"0", "9"}, v.Digits())
	assert.Equal(t, "RC3-feature", v.Qualifier())
	assert.True(t, v.IsSnapshot())
	assert.True(t, v.IsNumeric())

	alt := MustParse("trunk-SNAPSHOT")
	assert.Empty(t, alt.Digits())
	assert.Equal(t, "trunk", alt.Qualifier())
	assert.True(t, alt.IsSnapshot())
	assert.False(t, alt.IsNumeric())

	release := MustParse("1.2.0")
	assert.False(t, release.IsSnapshot())
	assert.Empty(t, release.Qualifier())
}

func TestReleaseAndSnapshotStrings(t *testing.T) {
	tests := []struct {
		input    string
		release  string
		snapshot string
	}{
		{"1.2.0-SNAPSHOT", "1.2.0", "1.2.0-SNAPSHOT"},
		{"1.2.0", "1.2.0", "1.2.0-SNAPSHOT"},
		{"0.9-RC3", "0.9-RC3", "0.9-RC3-SNAPSHOT"},
		{"1.0_SNAPSHOT", "1.0", "1.0-SNAPSHOT"},
		{"trunk-SNAPSHOT", "trunk", "trunk-SNAPSHOT"},
		{"SNAPSHOT", "", "SNAPSHOT"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			v := MustParse(tc.input)
			assert.Equal(t, tc.release, v.ReleaseVersionString())
			assert.Equal(t, tc.snapshot, v.SnapshotVersionString())
		})
	}
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		index        int
		wantSnapshot bool
		want         string
	}{
		{"default increment snapshot", "0.58", NoIndex, true, "0.59-SNAPSHOT"},
		{"default increment release", "0.58", NoIndex, false, "0.59"},
		{"index zero fills following digits", "0.58", 0, true, "1.0-SNAPSHOT"},
		{"index beyond range falls back", "0.58", 100, true, "0.59-SNAPSHOT"},
		{"negative index falls back", "1.2.3", -7, false, "1.2.4"},
		{"middle index", "1.2.3-SNAPSHOT", 1, true, "1.3.0-SNAPSHOT"},
		{"last index", "1.2.3", 2, false, "1.2.4"},
		{"qualifier kept", "0.9-RC3-SNAPSHOT", NoIndex, true, "0.10-RC3-SNAPSHOT"},
		{"leading zeros kept", "1.09", NoIndex, false, "1.10"},
		{"padding kept", "1.007", NoIndex, false, "1.008"},
		{"snapshot dropped", "1.2.0-SNAPSHOT", NoIndex, false, "1.2.1"},
		{"non numeric is a fixed point", "trunk-SNAPSHOT", 0, true, "trunk-SNAPSHOT"},
		{"non numeric release form", "trunk-SNAPSHOT", NoIndex, false, "trunk"},
		{"big digit", "1.99999999999999999999", NoIndex, false, "1.100000000000000000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MustParse(tc.input).NextVersion(tc.index, tc.wantSnapshot))
		})
	}
}

func TestNextSnapshotVersion(t *testing.T) {
	assert.Equal(t, "1.3-SNAPSHOT", MustParse("1.2").NextSnapshotVersion(NoIndex))
	assert.Equal(t, "2.0-SNAPSHOT", MustParse("1.2").NextSnapshotVersion(0))
}

func TestHotfixVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		preserve bool
		index    int
		want     string
	}{
		{"release", "1.0", false, NoIndex, "1.1"},
		{"release with preserve", "1.0", true, NoIndex, "1.1"},
		{"snapshot preserved", "1.0-SNAPSHOT", true, NoIndex, "1.1-SNAPSHOT"},
		{"snapshot stripped", "1.0-SNAPSHOT", false, NoIndex, "1.1"},
		{"indexed", "1.4.2", false, 1, "1.5.0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MustParse(tc.input).HotfixVersion(tc.preserve, tc.index))
		})
	}
}

func TestFeatureVersion(t *testing.T) {
	assert.Equal(t, "0.9-feature-SNAPSHOT", MustParse("0.9-SNAPSHOT").FeatureVersion("feature"))
	assert.Equal(t, "0.9-RC3", MustParse("0.9-RC3").FeatureVersion(""))
	assert.Equal(t, "1.0-login", MustParse("1.0").FeatureVersion("login"))
}

func TestDigitsOnly(t *testing.T) {
	v := MustParse("1.4-RC2-SNAPSHOT").DigitsOnly()
	assert.Equal(t, "1.4", v.String())
	assert.False(t, v.IsSnapshot())
	assert.Equal(t, "1.5-SNAPSHOT", v.NextSnapshotVersion(NoIndex))

	orig := MustParse("1.4")
	digits := orig.Digits()
	digits[0] = "9"
	assert.Equal(t, "1.4", orig.String(), "Digits must return a copy")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.10", -1},
		{"1.10", "1.2", 1},
		{"1.0", "1.0.0", 0},
		{"2.0", "1.9.9", 1},
		{"1.0-RC1", "1.0", -1},
		{"1.0-RC1", "1.0-RC2", -1},
		{"1.0-SNAPSHOT", "1.0", -1},
		{"1.0", "1.0-SNAPSHOT", 1},
		{"1.1-SNAPSHOT", "1.0", 1},
		{"1.0.1", "1.0.1", 0},
	}

	for _, tc := range tests {
		t.Run(tc.a+"_vs_"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.want, Compare(MustParse(tc.a), MustParse(tc.b)))
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a version") })
}

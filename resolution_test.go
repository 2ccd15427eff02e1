package pictdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseResolutionAcceptsOnlyCanonicalNames(t *testing.T) {
	cases := map[string]int{
		"thumb":     ResThumb,
		"thumbnail": ResThumb,
		"small":     ResSmall,
		"orig":      ResOrig,
		"original":  ResOrig,
	}

	for name, want := range cases {
		got, err := ParseResolution(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
}

func TestParseResolutionRejectsPrefixesAndGarbage(t *testing.T) {
	for _, name := range []string{"th", "sm", "or", "Thumb", "THUMBNAIL", "", "medium"} {
		_, err := ParseResolution(name)
		require.ErrorIs(t, err, ErrInvalidArgument, name)
	}
}

func TestResolutionNameRoundTrips(t *testing.T) {
	for _, res := range []int{ResThumb, ResSmall, ResOrig} {
		name := ResolutionName(res)
		parsed, err := ParseResolution(name)
		require.NoError(t, err)
		require.Equal(t, res, parsed)
	}
}

func TestFileNameConvention(t *testing.T) {
	require.Equal(t, "vacation.thumb.jpg", FileName("vacation", ResThumb))
	require.Equal(t, "vacation.small.jpg", FileName("vacation", ResSmall))
	require.Equal(t, "vacation.orig.jpg", FileName("vacation", ResOrig))
}

func TestValidatePictIDBounds(t *testing.T) {
	require.NoError(t, validatePictID("a"))
	require.ErrorIs(t, validatePictID(""), ErrInvalidArgument)

	long := strings.Repeat("x", maxPictIDLen)
	require.ErrorIs(t, validatePictID(long), ErrInvalidArgument)

	fits := strings.Repeat("x", maxPictIDLen-1)
	require.NoError(t, validatePictID(fits))
}

package itinerary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

func TestDirectory_Resolve(t *testing.T) {
	dir := testDirectory(t)

	testCases := []struct {
		name  string
		token string
		want  []string
	}{
		{name: "airport code", token: "JFK", want: []string{"JFK"}},
		{name: "lower case with spaces", token: "  lhr ", want: []string{"LHR"}},
		{name: "city code", token: "NYC", want: []string{"JFK", "LGA"}},
		{name: "city code lower case", token: "lon", want: []string{"LHR", "LGW"}},
		{name: "airport code shadows city code", token: "BER", want: []string{"BER"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			codes, err := dir.Resolve(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.want, codes)
		})
	}
}

func TestDirectory_Resolve_Unknown(t *testing.T) {
	dir := testDirectory(t)

	codes, err := dir.Resolve(" zzz ")

	assert.Nil(t, codes)
	var unknown *domain.UnknownLocationError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ZZZ", unknown.Token)

	field := unknown.InField("legs[2].destination")
	assert.Equal(t, "legs[2].destination", field.Field)
	assert.ErrorIs(t, field, domain.ErrValidation)
}

func TestDirectory_Resolve_ReturnsCopy(t *testing.T) {
	dir := testDirectory(t)

	codes, err := dir.Resolve("NYC")
	require.NoError(t, err)
	codes[0] = "XXX"

	again, err := dir.Resolve("NYC")
	require.NoError(t, err)
	assert.Equal(t, []string{"JFK", "LGA"}, again)
}

func TestNewDirectory_BadTimezone(t *testing.T) {
	_, err := NewDirectory([]domain.Airport{{Code: "XXX", CityCode: "XXX", Timezone: "Mars/Olympus"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "XXX")
}

func TestDirectory_Location(t *testing.T) {
	dir := testDirectory(t)

	loc, err := dir.Location("nrt")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	_, err = dir.Location("ZZZ")
	assert.Error(t, err)
}

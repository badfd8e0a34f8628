package postmile

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marker(pm, odometer, x, y float64) Marker {
	return Marker{
		Position:  orb.Point{x, y},
		PM:        pm,
		Odometer:  odometer,
		District:  "12",
		County:    "ORA",
		Route:     "5",
		Direction: "NB",
	}
}

func TestSelectMarkers_InclusiveAndOrdered(t *testing.T) {
	markers := []Marker{
		marker(3.0, 5.0, 3, 0),
		marker(1.0, 1.0, 1, 0),
		marker(2.0, 9.0, 2, 1),
		marker(2.0, 4.0, 2, 0),
		marker(4.0, 6.0, 4, 0),
	}

	selected, err := SelectMarkers(markers, Range{Start: 2, End: 3})
	require.NoError(t, err)
	require.Len(t, selected, 3)

	assert.Equal(t, 2.0, selected[0].PM)
	assert.Equal(t, 4.0, selected[0].Odometer, "odometer breaks the PM tie")
	assert.Equal(t, 2.0, selected[1].PM)
	assert.Equal(t, 9.0, selected[1].Odometer)
	assert.Equal(t, 3.0, selected[2].PM)
}

func TestSelectMarkers_ReversedRange(t *testing.T) {
	markers := []Marker{marker(1, 1, 1, 0), marker(5, 5, 5, 0), marker(9, 9, 9, 0)}

	forward, err := SelectMarkers(markers, Range{Start: 3, End: 8})
	require.NoError(t, err)
	reversed, err := SelectMarkers(markers, Range{Start: 8, End: 3})
	require.NoError(t, err)

	assert.Equal(t, forward, reversed)
}

func TestSelectMarkers_SingleMatch(t *testing.T) {
	markers := []Marker{marker(1, 1, 1, 0), marker(2, 2, 2, 0), marker(3, 3, 3, 0)}

	selected, err := SelectMarkers(markers, Range{Start: 1.5, End: 2.5})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, 2.0, selected[0].PM)
}

func TestSelectMarkers_Errors(t *testing.T) {
	markers := []Marker{marker(1, 1, 1, 0), marker(3, 3, 3, 0)}

	_, err := SelectMarkers(markers, Range{Start: 1.5, End: 2.5})
	assert.ErrorIs(t, err, ErrEmptySelection, "gap between markers")

	_, err = SelectMarkers(nil, Range{Start: 0, End: 10})
	assert.ErrorIs(t, err, ErrEmptySelection, "no markers at all")

	_, err = SelectMarkers(markers, Range{Start: 10, End: 20})
	assert.ErrorIs(t, err, ErrInvalidRange, "range beyond the route")

	_, err = SelectMarkers(markers, Range{Start: 20, End: 10})
	assert.ErrorIs(t, err, ErrInvalidRange, "reversed range beyond the route")

	_, err = SelectMarkers(markers, Range{Start: math.NaN(), End: 2})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = SelectMarkers(markers, Range{Start: 0, End: math.Inf(1)})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestPMExtent(t *testing.T) {
	lo, hi, ok := PMExtent([]Marker{
		marker(4.2, 0, 0, 0),
		marker(math.NaN(), 0, 0, 0),
		marker(0.3, 0, 0, 0),
		marker(17.9, 0, 0, 0),
	})
	require.True(t, ok)
	assert.Equal(t, 0.3, lo)
	assert.Equal(t, 17.9, hi)

	_, _, ok = PMExtent(nil)
	assert.False(t, ok)
}

func TestRange(t *testing.T) {
	assert.Equal(t, Range{Start: 3, End: 8}, Range{Start: 8, End: 3}.Normalize())
	assert.Equal(t, Range{Start: 3, End: 8}, Range{Start: 3, End: 8}.Normalize())

	r := Range{Start: 3, End: 8}
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(8))
	assert.False(t, r.Contains(8.0001))
	assert.Equal(t, "[3.000, 8.000]", r.String())
}

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsForCountCoversEveryCount(t *testing.T) {
	for n := 1; n <= MaxSlots; n++ {
		slots := SlotsForCount(n)
		assert.GreaterOrEqual(t, len(slots), n, "count %d", n)
		for _, p := range slots {
			assert.True(t, p.X >= 0 && p.X <= DesignWidth, "x in design space")
			assert.True(t, p.Y >= 0 && p.Y <= DesignHeight, "y in design space")
		}
	}
}

func TestSlotsForCountEdges(t *testing.T) {
	assert.Empty(t, SlotsForCount(0))
	assert.Empty(t, SlotsForCount(-2))
	assert.Equal(t, SlotsForCount(5), SlotsForCount(9))
}

func TestSlotsForCountReturnsCopy(t *testing.T) {
	s := SlotsForCount(1)
	s[0].X = -1
	assert.Equal(t, 320.0, SlotsForCount(1)[0].X)
}

func TestComputePositionsScalesLinearly(t *testing.T) {
	for n := 1; n <= MaxSlots; n++ {
		base := ComputePositions(n, 800, 350)
		wide := ComputePositions(n, 1600, 350)
		tall := ComputePositions(n, 800, 700)
		require.Len(t, wide, len(base))
		require.Len(t, tall, len(base))
		for i := range base {
			assert.InDelta(t, base[i].X*2, wide[i].X, 1e-9)
			assert.InDelta(t, base[i].Y, wide[i].Y, 1e-9)
			assert.InDelta(t, base[i].X, tall[i].X, 1e-9)
			assert.InDelta(t, base[i].Y*2, tall[i].Y, 1e-9)
		}
	}
}

func TestThreeCharmLayout(t *testing.T) {
	got := ComputePositions(3, DesignWidth, DesignHeight)
	assert.Equal(t, []Point{{100, 140}, {320, 200}, {540, 140}}, got)
}

func TestAssignFollowsOrder(t *testing.T) {
	placed := Assign([]string{"a", "b", "c"}, 800, 350)
	require.Len(t, placed, 3)
	assert.Equal(t, Placement{InstanceID: "a", Slot: 0, Point: Point{100, 140}}, placed[0])

	// moving "a" from index 0 to index 2 moves it onto slot 2's coordinates
	placed = Assign([]string{"b", "c", "a"}, 800, 350)
	assert.Equal(t, "a", placed[2].InstanceID)
	assert.Equal(t, Point{540, 140}, placed[2].Point)
}

func TestSlotMapAndPlaceFromSlots(t *testing.T) {
	ids := []string{"x", "y", "z"}
	m := SlotMap(ids)
	assert.Equal(t, map[string]int{"x": 0, "y": 1, "z": 2}, m)

	placed := PlaceFromSlots(m, len(m), 400, 175)
	require.Len(t, placed, 3)
	assert.Equal(t, "y", placed[1].InstanceID)
	assert.Equal(t, Point{160, 100}, placed[1].Point)
}

func TestPlaceFromSlotsSkipsOutOfRange(t *testing.T) {
	placed := PlaceFromSlots(map[string]int{"a": 0, "b": 4, "c": -1}, 2, 800, 350)
	require.Len(t, placed, 1)
	assert.Equal(t, "a", placed[0].InstanceID)
}

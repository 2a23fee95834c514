// Package layout places charm instances on the bracelet canvas.
//
// Slot assignment is positional: the instance at index i of the ordered
// selection takes slot i of the list predefined for the total charm count.
package layout

// MaxSlots is the largest charm count with a predefined slot list.
const MaxSlots = 7

// fallbackCount is used for counts without an entry.
const fallbackCount = 5

var slotsByCount = map[int][]Point{
	1: {{320, 200}},
	2: {{210, 170}, {430, 170}},
	3: {{100, 140}, {320, 200}, {540, 140}},
	4: {{60, 130}, {230, 185}, {410, 185}, {580, 130}},
	5: {{40, 120}, {180, 170}, {320, 200}, {460, 170}, {600, 120}},
	6: {{30, 115}, {150, 155}, {270, 190}, {390, 190}, {510, 155}, {630, 115}},
	7: {{20, 110}, {125, 145}, {230, 175}, {320, 200}, {410, 175}, {515, 145}, {620, 110}},
}

// Placement is the position of one charm instance.
type Placement struct {
	InstanceID string `json:"instance_id"`
	Slot       int    `json:"slot"`
	Point
}

// SlotsForCount returns the design-space slot list for count charms.
// Zero charms have no slots.
func SlotsForCount(count int) []Point {
	if count <= 0 {
		return nil
	}
	slots, ok := slotsByCount[count]
	if !ok {
		slots = slotsByCount[fallbackCount]
	}
	return append([]Point(nil), slots...)
}

// ComputePositions scales the slot list for count onto a width×height canvas.
func ComputePositions(count int, width, height float64) []Point {
	slots := SlotsForCount(count)
	sx, sy := width/DesignWidth, height/DesignHeight
	for i := range slots {
		slots[i].X *= sx
		slots[i].Y *= sy
	}
	return slots
}

// Assign places ordered instances onto the canvas. Instances beyond the
// slot list are left out.
func Assign(instanceIDs []string, width, height float64) []Placement {
	positions := ComputePositions(len(instanceIDs), width, height)
	out := make([]Placement, 0, len(instanceIDs))
	for i, id := range instanceIDs {
		if i >= len(positions) {
			break
		}
		out = append(out, Placement{InstanceID: id, Slot: i, Point: positions[i]})
	}
	return out
}

// SlotMap is the explicit instanceID -> slot index mapping persisted with
// carts and orders.
func SlotMap(instanceIDs []string) map[string]int {
	slots := SlotsForCount(len(instanceIDs))
	m := make(map[string]int, len(instanceIDs))
	for i, id := range instanceIDs {
		if i >= len(slots) {
			break
		}
		m[id] = i
	}
	return m
}

// PlaceFromSlots rebuilds placements from a persisted slot map without
// relying on any array order. Entries pointing past the slot list for
// count are skipped. The result is ordered by slot.
func PlaceFromSlots(slots map[string]int, count int, width, height float64) []Placement {
	positions := ComputePositions(count, width, height)
	bySlot := make([]string, len(positions))
	for id, s := range slots {
		if s < 0 || s >= len(positions) {
			continue
		}
		// two ids on the same slot: keep the lexically smaller for determinism
		if cur := bySlot[s]; cur == "" || id < cur {
			bySlot[s] = id
		}
	}
	out := make([]Placement, 0, len(slots))
	for s, id := range bySlot {
		if id == "" {
			continue
		}
		out = append(out, Placement{InstanceID: id, Slot: s, Point: positions[s]})
	}
	return out
}

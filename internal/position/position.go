// Package position computes dense position indices for ordered sibling
// groups: the statuses of a board or the tasks of a status. Every function is
// a pure computation over its inputs and returns only the placements that
// actually change, so callers rewrite the smallest possible set of rows.
//
// The contract for a sibling group of size n is that its positions are
// exactly {0, 1, ..., n-1}. All functions here assume their input satisfies
// that contract and produce a write set that keeps it satisfied.
package position

import "github.com/google/uuid"

// Placement pairs a sibling with a position.
type Placement struct {
	ID       uuid.UUID
	Position int
}

// Append returns the position for a new sibling joining a group of the given
// size. New items always go to the end, so no existing row is touched.
func Append(groupSize int) int {
	return groupSize
}

// MoveWithin computes the write set for moving one sibling to a requested
// position inside its own group. The request is clamped to [0, n-1]. Only the
// contiguous range between the old and new slot is shifted; moving an item
// onto its current position yields an empty write set.
func MoveWithin(siblings []Placement, movingID uuid.UUID, requestedPosition int) []Placement {
	old, ok := positionOf(siblings, movingID)
	if !ok {
		return nil
	}

	target := clamp(requestedPosition, 0, len(siblings)-1)
	if target == old {
		return nil
	}

	writes := make([]Placement, 0, abs(target-old)+1)
	for _, s := range siblings {
		if s.ID == movingID {
			continue
		}
		switch {
		case target < old && s.Position >= target && s.Position < old:
			writes = append(writes, Placement{ID: s.ID, Position: s.Position + 1})
		case target > old && s.Position > old && s.Position <= target:
			writes = append(writes, Placement{ID: s.ID, Position: s.Position - 1})
		}
	}
	writes = append(writes, Placement{ID: movingID, Position: target})
	return writes
}

// MoveAcross computes the write sets for moving a sibling from one group into
// another. source must still contain the moving item; dest must not. The
// source group compacts to close the gap, the destination makes room at the
// requested slot (clamped to [0, len(dest)], i.e. an append is always valid).
// The moving item's new placement is part of destWrites.
func MoveAcross(source, dest []Placement, movingID uuid.UUID, requestedPosition int) (sourceWrites, destWrites []Placement) {
	old, ok := positionOf(source, movingID)
	if !ok {
		return nil, nil
	}

	for _, s := range source {
		if s.ID != movingID && s.Position > old {
			sourceWrites = append(sourceWrites, Placement{ID: s.ID, Position: s.Position - 1})
		}
	}

	target := clamp(requestedPosition, 0, len(dest))
	for _, d := range dest {
		if d.Position >= target {
			destWrites = append(destWrites, Placement{ID: d.ID, Position: d.Position + 1})
		}
	}
	destWrites = append(destWrites, Placement{ID: movingID, Position: target})
	return sourceWrites, destWrites
}

// RemoveAndCompact computes the write set that closes the gap left by a
// deleted sibling. survivors is the group without the removed item.
func RemoveAndCompact(survivors []Placement, removedPosition int) []Placement {
	var writes []Placement
	for _, s := range survivors {
		if s.Position > removedPosition {
			writes = append(writes, Placement{ID: s.ID, Position: s.Position - 1})
		}
	}
	return writes
}

func positionOf(siblings []Placement, id uuid.UUID) (int, bool) {
	for _, s := range siblings {
		if s.ID == id {
			return s.Position, true
		}
	}
	return 0, false
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

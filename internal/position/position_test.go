package position_test

import (
	"testing"

	"taskboard/internal/position"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(n int) []position.Placement {
	siblings := make([]position.Placement, n)
	for i := range siblings {
		siblings[i] = position.Placement{ID: uuid.New(), Position: i}
	}
	return siblings
}

// apply merges a write set into a group and returns the updated group.
func apply(siblings []position.Placement, writes []position.Placement) []position.Placement {
	out := make([]position.Placement, len(siblings))
	copy(out, siblings)
	for _, w := range writes {
		for i := range out {
			if out[i].ID == w.ID {
				out[i].Position = w.Position
			}
		}
	}
	return out
}

// assertDense checks that positions are exactly {0..n-1}, each used once.
func assertDense(t *testing.T, siblings []position.Placement) {
	t.Helper()
	seen := make(map[int]bool, len(siblings))
	for _, s := range siblings {
		assert.GreaterOrEqual(t, s.Position, 0)
		assert.Less(t, s.Position, len(siblings))
		assert.False(t, seen[s.Position], "duplicate position %d", s.Position)
		seen[s.Position] = true
	}
}

func TestAppend(t *testing.T) {
	assert.Equal(t, 0, position.Append(0))
	assert.Equal(t, 5, position.Append(5))
}

func TestMoveWithin_SamePositionIsNoop(t *testing.T) {
	siblings := group(4)

	writes := position.MoveWithin(siblings, siblings[2].ID, 2)

	assert.Empty(t, writes)
}

func TestMoveWithin_TowardsFront(t *testing.T) {
	// Board with columns To Do, Doing, Done at positions 0, 1, 2;
	// moving Done to the front pushes the others right.
	siblings := group(3)
	toDo, doing, done := siblings[0], siblings[1], siblings[2]

	writes := position.MoveWithin(siblings, done.ID, 0)
	updated := apply(siblings, writes)

	byID := positionByID(updated)
	assert.Equal(t, 0, byID[done.ID])
	assert.Equal(t, 1, byID[toDo.ID])
	assert.Equal(t, 2, byID[doing.ID])
	assertDense(t, updated)
}

func TestMoveWithin_TowardsBack(t *testing.T) {
	siblings := group(5)

	writes := position.MoveWithin(siblings, siblings[1].ID, 3)
	updated := apply(siblings, writes)

	byID := positionByID(updated)
	assert.Equal(t, 3, byID[siblings[1].ID])
	assert.Equal(t, 1, byID[siblings[2].ID])
	assert.Equal(t, 2, byID[siblings[3].ID])
	// Untouched ends keep their positions
	assert.Equal(t, 0, byID[siblings[0].ID])
	assert.Equal(t, 4, byID[siblings[4].ID])
	assertDense(t, updated)
}

func TestMoveWithin_OnlyAffectedRangeIsWritten(t *testing.T) {
	siblings := group(6)

	writes := position.MoveWithin(siblings, siblings[4].ID, 2)

	// siblings at 2 and 3 shift, plus the moving item itself
	require.Len(t, writes, 3)
}

func TestMoveWithin_ClampsRequestedPosition(t *testing.T) {
	siblings := group(3)

	writes := position.MoveWithin(siblings, siblings[0].ID, 99)
	updated := apply(siblings, writes)

	assert.Equal(t, 2, positionByID(updated)[siblings[0].ID])
	assertDense(t, updated)

	writes = position.MoveWithin(siblings, siblings[2].ID, -5)
	updated = apply(siblings, writes)

	assert.Equal(t, 0, positionByID(updated)[siblings[2].ID])
	assertDense(t, updated)
}

func TestMoveWithin_RoundTripRestoresGroup(t *testing.T) {
	siblings := group(7)
	original := positionByID(siblings)

	there := apply(siblings, position.MoveWithin(siblings, siblings[5].ID, 1))
	back := apply(there, position.MoveWithin(there, siblings[5].ID, 5))

	assert.Equal(t, original, positionByID(back))
}

func TestMoveWithin_UnknownIDYieldsNoWrites(t *testing.T) {
	siblings := group(3)

	writes := position.MoveWithin(siblings, uuid.New(), 1)

	assert.Empty(t, writes)
}

func TestMoveAcross_AppendsToDestination(t *testing.T) {
	// A task at position 2 of a four-task column moves into a column
	// holding two tasks: it lands at position 2 there, and the source
	// compacts to 0..2.
	source := group(4)
	dest := group(2)
	moving := source[2]

	srcWrites, destWrites := position.MoveAcross(source, dest, moving.ID, len(dest))

	srcAfter := apply(removeByID(source, moving.ID), srcWrites)
	assertDense(t, srcAfter)

	byID := positionByID(apply(append(dest, position.Placement{ID: moving.ID, Position: -1}), destWrites))
	assert.Equal(t, 2, byID[moving.ID])
	assert.Equal(t, 0, byID[dest[0].ID])
	assert.Equal(t, 1, byID[dest[1].ID])
}

func TestMoveAcross_InsertsAtRequestedSlot(t *testing.T) {
	source := group(3)
	dest := group(3)
	moving := source[0]

	_, destWrites := position.MoveAcross(source, dest, moving.ID, 1)

	destAfter := apply(append(dest, position.Placement{ID: moving.ID, Position: -1}), destWrites)
	byID := positionByID(destAfter)
	assert.Equal(t, 1, byID[moving.ID])
	assert.Equal(t, 0, byID[dest[0].ID])
	assert.Equal(t, 2, byID[dest[1].ID])
	assert.Equal(t, 3, byID[dest[2].ID])
	assertDense(t, destAfter)
}

func TestMoveAcross_IntoEmptyGroup(t *testing.T) {
	source := group(2)
	moving := source[1]

	srcWrites, destWrites := position.MoveAcross(source, nil, moving.ID, 0)

	assert.Empty(t, srcWrites)
	require.Len(t, destWrites, 1)
	assert.Equal(t, position.Placement{ID: moving.ID, Position: 0}, destWrites[0])
}

func TestRemoveAndCompact(t *testing.T) {
	// Column with tasks at 0..3; deleting the task at position 1 leaves
	// the rest dense and in the same relative order.
	siblings := group(4)
	removed := siblings[1]
	survivors := removeByID(siblings, removed.ID)

	writes := position.RemoveAndCompact(survivors, removed.Position)
	updated := apply(survivors, writes)

	byID := positionByID(updated)
	assert.Equal(t, 0, byID[siblings[0].ID])
	assert.Equal(t, 1, byID[siblings[2].ID])
	assert.Equal(t, 2, byID[siblings[3].ID])
	assertDense(t, updated)
}

func TestRemoveAndCompact_LastPositionWritesNothing(t *testing.T) {
	siblings := group(3)
	survivors := removeByID(siblings, siblings[2].ID)

	writes := position.RemoveAndCompact(survivors, 2)

	assert.Empty(t, writes)
}

func TestDenseInvariantSurvivesOperationSequence(t *testing.T) {
	siblings := group(5)

	for _, target := range []int{0, 4, 2, 2, 1, 3} {
		moving := siblings[target%len(siblings)].ID
		siblings = apply(siblings, position.MoveWithin(siblings, moving, target))
		assertDense(t, siblings)
	}

	removed := siblings[3]
	siblings = apply(removeByID(siblings, removed.ID), position.RemoveAndCompact(removeByID(siblings, removed.ID), removed.Position))
	assertDense(t, siblings)

	siblings = append(siblings, position.Placement{ID: uuid.New(), Position: position.Append(len(siblings))})
	assertDense(t, siblings)
}

func positionByID(siblings []position.Placement) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(siblings))
	for _, s := range siblings {
		out[s.ID] = s.Position
	}
	return out
}

func removeByID(siblings []position.Placement, id uuid.UUID) []position.Placement {
	out := make([]position.Placement, 0, len(siblings))
	for _, s := range siblings {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

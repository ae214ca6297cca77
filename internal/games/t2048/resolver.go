package t2048

import "slices"

// turnPlan holds merge bookkeeping for a single shift and is discarded afterwards.
type turnPlan struct {
	mergeTarget map[TileID]TileID // source -> destination
	locked      map[TileID]bool   // destinations that already absorbed a merge
	sources     []TileID          // merge sources in resolution order
}

func newTurnPlan() *turnPlan {
	return &turnPlan{
		mergeTarget: make(map[TileID]TileID),
		locked:      make(map[TileID]bool),
	}
}

// canMergeWith reports whether a moving tile of the given value may merge into target.
// A tile is a merge source or a merge destination within one shift, never both.
func (p *turnPlan) canMergeWith(target *Tile, value int) bool {
	if target.Value != value {
		return false
	}
	if p.locked[target.ID] {
		return false
	}
	if _, isSource := p.mergeTarget[target.ID]; isSource {
		return false
	}
	return true
}

func (p *turnPlan) designate(source, target *Tile) {
	p.mergeTarget[source.ID] = target.ID
	p.locked[target.ID] = true
	p.sources = append(p.sources, source.ID)
}

// resolution is the outcome of resolving one shift on a board.
type resolution struct {
	moves   []Move
	merges  []Merge
	changed bool
}

// resolve applies a shift to the board in place.
//
// Tiles are processed nearest-edge first, so a tile only ever advances into slots whose
// occupants are already final for this turn. Each tile slides while the next slot is empty,
// and stops either against a blocker or by merging into an equal, unlocked neighbor.
// Merged pairs are replaced by a fresh tile of double value at the destination slot.
func resolve(b *Board, d Direction) resolution {
	before := b.grid.occupancy()
	order := b.traversalOrder(d)
	origin := make(map[TileID]Position, len(order))
	plan := newTurnPlan()

	for _, t := range order {
		origin[t.ID] = t.Pos
		for {
			next := t.Pos.Step(d)
			slot, ok := b.grid.SlotAt(next)
			if !ok {
				break
			}
			occID, occupied := slot.Occupant()
			if !occupied {
				b.bind(t, next)
				continue
			}
			if occ := b.tiles[occID]; plan.canMergeWith(occ, t.Value) {
				plan.designate(t, occ)
				b.vacate(t)
			}
			break
		}
	}

	var res resolution
	for _, t := range order {
		to := t.Pos
		if targetID, ok := plan.mergeTarget[t.ID]; ok {
			to = b.tiles[targetID].Pos
		}
		if from := origin[t.ID]; from != to {
			res.moves = append(res.moves, Move{TileID: t.ID, From: from, To: to})
		}
	}

	for _, sourceID := range plan.sources {
		source := b.tiles[sourceID]
		target := b.tiles[plan.mergeTarget[sourceID]]
		at := target.Pos
		b.remove(source)
		b.remove(target)
		merged := b.place(target.Value*2, at)
		res.merges = append(res.merges, Merge{
			SourceID:    source.ID,
			TargetID:    target.ID,
			ResultValue: merged.Value,
			ResultID:    merged.ID,
			At:          at,
		})
	}

	res.changed = !slices.Equal(before, b.grid.occupancy())
	return res
}

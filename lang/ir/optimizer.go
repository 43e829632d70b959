package ir

// Optimize coalesces the Connect statements of b into signal equivalence
// classes, renaming each class to a single representative and dropping
// the Connect statements that become self-connections. Signals in b's
// reserved region - its own ports and its nested blocks' port regions -
// are never merged away: the first reserved signal encountered in a
// class becomes that class's representative, and every other reserved
// signal in the class is split back out as its own representative,
// preserving its individual connections.
func Optimize(b *Block) {
	uf := newUnionFind()

	for _, stmt := range b.Statements {
		if stmt.Op == Connect {
			uf.union(stmt.Inputs[0], stmt.Outputs[0])
			continue
		}
		for _, id := range stmt.Inputs {
			uf.add(id)
		}
		for _, id := range stmt.Outputs {
			uf.add(id)
		}
	}

	repr := assignRepresentatives(uf, b.ReservedSignalCount())

	kept := b.Statements[:0]
	for _, stmt := range b.Statements {
		if stmt.Op == Connect && repr[stmt.Inputs[0]] == repr[stmt.Outputs[0]] {
			continue
		}
		for i, id := range stmt.Inputs {
			stmt.Inputs[i] = repr[id]
		}
		for i, id := range stmt.Outputs {
			stmt.Outputs[i] = repr[id]
		}
		kept = append(kept, stmt)
	}
	b.Statements = kept
}

// assignRepresentatives walks uf's classes in first-encounter order,
// assigning each a representative signal id per Optimize's reserved-region
// rule; non-reserved-only classes are renumbered densely starting at
// reserved.
func assignRepresentatives(uf *unionFind, reserved uint32) map[uint32]uint32 {
	groups := make(map[uint32][]uint32)
	var classOrder []uint32
	seenRoot := make(map[uint32]bool)
	for _, id := range uf.order {
		r := uf.find(id)
		if !seenRoot[r] {
			seenRoot[r] = true
			classOrder = append(classOrder, r)
		}
		groups[r] = append(groups[r], id)
	}

	repr := make(map[uint32]uint32, len(uf.order))
	next := reserved

	for _, r := range classOrder {
		members := groups[r]

		var reservedMembers []uint32
		for _, m := range members {
			if m < reserved {
				reservedMembers = append(reservedMembers, m)
			}
		}

		if len(reservedMembers) > 0 {
			primary := reservedMembers[0]
			for _, m := range reservedMembers {
				repr[m] = m
			}
			for _, m := range members {
				if m >= reserved {
					repr[m] = primary
				}
			}
			continue
		}

		id := next
		next++
		for _, m := range members {
			repr[m] = id
		}
	}

	return repr
}

// unionFind is a signal-id union-find with first-encounter order tracking,
// so classes can later be walked deterministically.
type unionFind struct {
	parent map[uint32]uint32
	order  []uint32
	seen   map[uint32]bool
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[uint32]uint32), seen: make(map[uint32]bool)}
}

func (u *unionFind) add(id uint32) {
	if !u.seen[id] {
		u.seen[id] = true
		u.parent[id] = id
		u.order = append(u.order, id)
	}
}

func (u *unionFind) find(id uint32) uint32 {
	u.add(id)
	for u.parent[id] != id {
		u.parent[id] = u.parent[u.parent[id]]
		id = u.parent[id]
	}
	return id
}

func (u *unionFind) union(a, b uint32) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

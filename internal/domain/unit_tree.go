package domain

import (
	"errors"
	"fmt"
	"time"
)

// FindUnit returns the unit with the given id anywhere in the tree.
func (w *Work) FindUnit(id string) (Unit, bool) {
	path := UnitPath(w.Units, id)
	if len(path) == 0 {
		return Unit{}, false
	}
	return path[len(path)-1], true
}

// UnitPath returns the chain of units from a root down to the unit with id,
// inclusive. It returns nil when id is not in the tree.
func UnitPath(units []Unit, id string) []Unit {
	for _, u := range units {
		if u.ID == id {
			return []Unit{u}
		}
		if u.kind != unitBranch {
			continue
		}
		if sub := UnitPath(u.children, id); sub != nil {
			return append([]Unit{u}, sub...)
		}
	}
	return nil
}

// AddRootUnit appends u as the last root unit.
func (w *Work) AddRootUnit(u Unit, now time.Time) {
	units := make([]Unit, 0, len(w.Units)+1)
	units = append(units, w.Units...)
	units = append(units, u)
	renumber(units)
	w.Units = units
	w.UpdatedAt = now
}

// AddChildUnit appends child under the unit parentID. A leaf parent becomes
// a branch and loses its stage index.
func (w *Work) AddChildUnit(parentID string, child Unit, now time.Time) error {
	units, err := updateUnit(w.Units, parentID, func(parent Unit) (Unit, error) {
		children := make([]Unit, 0, len(parent.Children())+1)
		children = append(children, parent.Children()...)
		children = append(children, child)
		return asBranch(parent, children), nil
	})
	if err != nil {
		return fmt.Errorf("adding child to %q: %w", parentID, err)
	}
	w.Units = units
	w.UpdatedAt = now
	return nil
}

// SetChildrenCount resizes the children of parentID to count. Missing
// children are created with newChild (called once per new child, in order);
// surplus children are dropped from the end. A leaf parent becomes a branch.
func (w *Work) SetChildrenCount(parentID string, count int, newChild func() Unit, now time.Time) error {
	if count < 0 {
		count = 0
	}
	units, err := updateUnit(w.Units, parentID, func(parent Unit) (Unit, error) {
		existing := parent.Children()
		children := make([]Unit, 0, count)
		for i := 0; i < count; i++ {
			if i < len(existing) {
				children = append(children, existing[i])
				continue
			}
			children = append(children, newChild())
		}
		return asBranch(parent, children), nil
	})
	if err != nil {
		return fmt.Errorf("setting children of %q: %w", parentID, err)
	}
	if !w.hasUnit(w.PrimaryUnitID, units) {
		w.PrimaryUnitID = ""
	}
	w.Units = units
	w.UpdatedAt = now
	return nil
}

// RemoveUnit deletes the unit id and its subtree. If the primary unit was
// removed, directly or through an ancestor, PrimaryUnitID is cleared.
func (w *Work) RemoveUnit(id string, now time.Time) error {
	units, ok := removeUnit(w.Units, id)
	if !ok {
		return fmt.Errorf("removing %q: %w", id, ErrUnitNotFound)
	}
	if !w.hasUnit(w.PrimaryUnitID, units) {
		w.PrimaryUnitID = ""
	}
	w.Units = units
	w.UpdatedAt = now
	return nil
}

// SetUnitStage moves the leaf id to stage. Negative stages clamp to zero.
func (w *Work) SetUnitStage(id string, stage int, now time.Time) error {
	units, err := updateUnit(w.Units, id, func(u Unit) (Unit, error) {
		if u.kind != unitLeaf {
			return Unit{}, ErrNotLeaf
		}
		leaf := NewLeafUnit(u.ID, stage)
		leaf.Index = u.Index
		return leaf, nil
	})
	if err != nil {
		return fmt.Errorf("setting stage of %q: %w", id, err)
	}
	w.Units = units
	w.UpdatedAt = now
	return nil
}

// SetPrimaryUnit marks id as the unit currently in focus.
func (w *Work) SetPrimaryUnit(id string, now time.Time) error {
	if _, ok := w.FindUnit(id); !ok {
		return fmt.Errorf("setting primary unit %q: %w", id, ErrUnitNotFound)
	}
	w.PrimaryUnitID = id
	w.UpdatedAt = now
	return nil
}

func (w *Work) hasUnit(id string, units []Unit) bool {
	return id != "" && UnitPath(units, id) != nil
}

func asBranch(u Unit, children []Unit) Unit {
	renumber(children)
	return Unit{ID: u.ID, Index: u.Index, kind: unitBranch, children: children}
}

// updateUnit returns a copy of units with fn applied to the unit id. Only
// the slices along the path to id are copied.
func updateUnit(units []Unit, id string, fn func(Unit) (Unit, error)) ([]Unit, error) {
	for i, u := range units {
		if u.ID == id {
			updated, err := fn(u)
			if err != nil {
				return nil, err
			}
			out := make([]Unit, len(units))
			copy(out, units)
			out[i] = updated
			return out, nil
		}
	}
	for i, u := range units {
		if u.kind != unitBranch {
			continue
		}
		children, err := updateUnit(u.children, id, fn)
		if errors.Is(err, ErrUnitNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out := make([]Unit, len(units))
		copy(out, units)
		out[i].children = children
		return out, nil
	}
	return nil, ErrUnitNotFound
}

func removeUnit(units []Unit, id string) ([]Unit, bool) {
	for i, u := range units {
		if u.ID != id {
			continue
		}
		out := make([]Unit, 0, len(units)-1)
		out = append(out, units[:i]...)
		out = append(out, units[i+1:]...)
		renumber(out)
		return out, true
	}
	for i, u := range units {
		if u.kind != unitBranch {
			continue
		}
		if children, ok := removeUnit(u.children, id); ok {
			out := make([]Unit, len(units))
			copy(out, units)
			out[i].children = children
			return out, true
		}
	}
	return units, false
}

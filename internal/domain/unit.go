package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnitNotFound = errors.New("unit not found")
	ErrNotLeaf      = errors.New("unit is not a leaf")
	ErrInvalidUnit  = errors.New("invalid unit")
)

type unitKind uint8

const (
	unitMalformed unitKind = iota
	unitBranch
	unitLeaf
)

// Unit is a node of a work's production tree. A unit is either a leaf that
// tracks a stage index or a branch that holds child units, never both.
// Construct units with NewLeafUnit or NewBranchUnit; the zero Unit is
// malformed and contributes nothing to progress.
//
// Index is the 1-based position among siblings and is maintained by the
// tree mutators on Work.
type Unit struct {
	ID    string
	Index int

	kind     unitKind
	stage    int
	children []Unit
}

// NewLeafUnit returns a leaf unit at the given stage. Negative stages are
// clamped to zero.
func NewLeafUnit(id string, stageIndex int) Unit {
	if stageIndex < 0 {
		stageIndex = 0
	}
	return Unit{ID: id, kind: unitLeaf, stage: stageIndex}
}

// NewBranchUnit returns a branch unit owning children, renumbered 1..n.
func NewBranchUnit(id string, children ...Unit) Unit {
	owned := make([]Unit, len(children))
	copy(owned, children)
	renumber(owned)
	return Unit{ID: id, kind: unitBranch, children: owned}
}

func (u Unit) IsLeaf() bool   { return u.kind == unitLeaf }
func (u Unit) IsBranch() bool { return u.kind == unitBranch }

// StageIndex reports the leaf's stage. ok is false for branches.
func (u Unit) StageIndex() (stage int, ok bool) {
	if u.kind != unitLeaf {
		return 0, false
	}
	return u.stage, true
}

// Children returns the branch's children. The slice is shared with the
// unit and must not be modified. Leaves return nil.
func (u Unit) Children() []Unit {
	if u.kind != unitBranch {
		return nil
	}
	return u.children
}

type unitWire struct {
	ID         string  `json:"id"`
	Index      int     `json:"index"`
	Children   *[]Unit `json:"children,omitempty"`
	StageIndex *int    `json:"stageIndex,omitempty"`
}

func (u Unit) MarshalJSON() ([]byte, error) {
	w := unitWire{ID: u.ID, Index: u.Index}
	switch u.kind {
	case unitLeaf:
		stage := u.stage
		w.StageIndex = &stage
	case unitBranch:
		children := u.children
		if children == nil {
			children = []Unit{}
		}
		w.Children = &children
	}
	return json.Marshal(w)
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var w unitWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Children != nil && w.StageIndex != nil {
		return fmt.Errorf("unit %q has both children and stageIndex: %w", w.ID, ErrInvalidUnit)
	}

	*u = Unit{ID: w.ID, Index: w.Index}
	switch {
	case w.StageIndex != nil:
		u.kind = unitLeaf
		u.stage = *w.StageIndex
		if u.stage < 0 {
			u.stage = 0
		}
	case w.Children != nil:
		u.kind = unitBranch
		u.children = *w.Children
		if u.children == nil {
			u.children = []Unit{}
		}
	}
	return nil
}

// renumber assigns contiguous 1-based indices to siblings in place.
func renumber(units []Unit) {
	for i := range units {
		units[i].Index = i + 1
	}
}

// Package editor turns authoring input into topology changes on an entity store.
package editor

import (
	"github.com/san-kum/sticksim/internal/dynamo"
	"github.com/san-kum/sticksim/internal/entity"
)

// Reorderer is notified with the new stick slot count whenever the stick set
// changes. The solver implements it to reshuffle its order array.
type Reorderer interface {
	Regenerate(n int)
}

// Editor applies authoring edits to a store.
type Editor struct {
	store      *entity.Store
	reorder    Reorderer
	pickRadius float64
	autoChain  bool

	drawing    bool
	stickStart dynamo.PointID
}

func New(store *entity.Store, reorder Reorderer, pickRadius float64) *Editor {
	return &Editor{
		store:      store,
		reorder:    reorder,
		pickRadius: pickRadius,
		stickStart: dynamo.NoPoint,
	}
}

func (e *Editor) PickRadius() float64 { return e.pickRadius }

func (e *Editor) SetPickRadius(r float64) {
	if r < 0 {
		r = 0
	}
	e.pickRadius = r
}

func (e *Editor) AutoChain() bool { return e.autoChain }

// Pick returns the first point, in insertion order, strictly within the pick
// radius of pos.
func (e *Editor) Pick(pos dynamo.Vec2) (dynamo.PointID, bool) {
	n := e.store.NumPoints()
	for i := 0; i < n; i++ {
		if e.store.At(dynamo.PointID(i)).Pos.Dist(pos) < e.pickRadius {
			return dynamo.PointID(i), true
		}
	}
	return dynamo.NoPoint, false
}

// AddPoint places a point at rest. In auto-chain mode the chain is rebuilt to
// include it.
func (e *Editor) AddPoint(pos dynamo.Vec2) dynamo.PointID {
	id := e.store.AddPoint(pos)
	if e.autoChain {
		e.RebuildChain()
	}
	return id
}

// AddStick connects two existing points directly.
func (e *Editor) AddStick(a, b dynamo.PointID) (dynamo.StickID, error) {
	id, err := e.store.AddStick(a, b)
	if err != nil {
		return id, err
	}
	e.topologyChanged()
	return id, nil
}

func (e *Editor) RemoveStick(id dynamo.StickID) error {
	if err := e.store.RemoveStick(id); err != nil {
		return err
	}
	e.topologyChanged()
	return nil
}

// BeginStick starts drawing a stick from an existing point.
func (e *Editor) BeginStick(from dynamo.PointID) error {
	if !e.store.Valid(from) {
		return &dynamo.EditError{Op: "begin stick", Handle: int(from), Wrapped: dynamo.ErrInvalidHandle}
	}
	e.drawing = true
	e.stickStart = from
	return nil
}

// EndStick completes the stick started by BeginStick. Drawing ends whether or
// not the stick is created. Ending on the start point is rejected with
// ErrSelfLoop and leaves the stick set untouched.
func (e *Editor) EndStick(to dynamo.PointID) (dynamo.StickID, error) {
	if !e.drawing {
		return -1, &dynamo.EditError{Op: "end stick", Handle: int(to), Wrapped: dynamo.ErrNoStickInProgress}
	}
	from := e.stickStart
	e.CancelStick()
	return e.AddStick(from, to)
}

func (e *Editor) CancelStick() {
	e.drawing = false
	e.stickStart = dynamo.NoPoint
}

// Drawing reports the start point of the stick being drawn, if any.
func (e *Editor) Drawing() (dynamo.PointID, bool) {
	return e.stickStart, e.drawing
}

func (e *Editor) ToggleLock(id dynamo.PointID) (bool, error) {
	return e.store.ToggleLock(id)
}

// Clear empties the store and abandons any stick in progress.
func (e *Editor) Clear() {
	e.store.Clear()
	e.CancelStick()
	e.topologyChanged()
}

// SetAutoChain switches auto-chain mode. Turning it on immediately replaces
// every stick with the i→i+1 chain; turning it off keeps the current sticks.
func (e *Editor) SetAutoChain(on bool) {
	e.autoChain = on
	if on {
		e.RebuildChain()
	}
}

// RebuildChain discards all sticks and links point i to point i+1. It returns
// the number of sticks created; fewer than two points yield none.
func (e *Editor) RebuildChain() int {
	e.store.ClearSticks()
	n := e.store.NumPoints()
	created := 0
	for i := 0; i+1 < n; i++ {
		if _, err := e.store.AddStick(dynamo.PointID(i), dynamo.PointID(i+1)); err == nil {
			created++
		}
	}
	e.topologyChanged()
	return created
}

func (e *Editor) topologyChanged() {
	if e.reorder != nil {
		e.reorder.Regenerate(e.store.NumSticks())
	}
}

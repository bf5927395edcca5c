package editor

import "github.com/san-kum/sticksim/internal/dynamo"

// Command is a discrete edit translated from an input event.
type Command interface {
	Apply(e *Editor) error
	String() string
}

type AddPoint struct{ Pos dynamo.Vec2 }

type BeginStick struct{ From dynamo.PointID }

type EndStick struct{ To dynamo.PointID }

type CancelStick struct{}

type AddStick struct{ A, B dynamo.PointID }

type RemoveStick struct{ ID dynamo.StickID }

type ToggleLock struct{ ID dynamo.PointID }

type Clear struct{}

type SetAutoChain struct{ On bool }

func (c AddPoint) Apply(e *Editor) error   { e.AddPoint(c.Pos); return nil }
func (c BeginStick) Apply(e *Editor) error { return e.BeginStick(c.From) }
func (c EndStick) Apply(e *Editor) error {
	_, err := e.EndStick(c.To)
	return err
}
func (c CancelStick) Apply(e *Editor) error { e.CancelStick(); return nil }
func (c AddStick) Apply(e *Editor) error {
	_, err := e.AddStick(c.A, c.B)
	return err
}
func (c RemoveStick) Apply(e *Editor) error { return e.RemoveStick(c.ID) }
func (c ToggleLock) Apply(e *Editor) error {
	_, err := e.ToggleLock(c.ID)
	return err
}
func (c Clear) Apply(e *Editor) error        { e.Clear(); return nil }
func (c SetAutoChain) Apply(e *Editor) error { e.SetAutoChain(c.On); return nil }

func (c AddPoint) String() string     { return "add point " + c.Pos.String() }
func (c BeginStick) String() string   { return "begin stick" }
func (c EndStick) String() string     { return "end stick" }
func (c CancelStick) String() string  { return "cancel stick" }
func (c AddStick) String() string     { return "add stick" }
func (c RemoveStick) String() string  { return "remove stick" }
func (c ToggleLock) String() string   { return "toggle lock" }
func (c Clear) String() string        { return "clear" }
func (c SetAutoChain) String() string { return "auto chain" }

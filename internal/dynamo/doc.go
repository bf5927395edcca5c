// Package dynamo provides the shared primitives of the stick simulation.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Vec2]: 2D vector, y axis pointing down
//   - [PointID], [StickID]: stable handles into the entity store
//   - [Params]: gravity, relaxation pass count and solver flags
//   - sentinel errors ([ErrInvalidHandle], [ErrSelfLoop], ...) and the
//     [EditError] / [SimulationError] wrappers
//
// # Example
//
//	p := dynamo.DefaultParams()
//	p.Passes = 50
//	if err := p.Validate(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Nothing in this module is safe for concurrent use. One simulation is owned
// by one goroutine.
package dynamo

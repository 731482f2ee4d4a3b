// Package dynamo provides the numeric primitives shared by the gravity engine.
//
// The package defines:
//
//   - [Vec2]: 2D vector used for positions, velocities and accelerations
//   - sentinel errors reported by the engine ([ErrDegenerateBody], [ErrInvalidState], ...)
//   - [TickError]: wraps a failure with the tick it was detected on
//   - [ParallelFor]: chunked fan-out used by the parallel force accumulator
//
// # Thread Safety
//
// Vec2 is a value type and safe to copy. Nothing in this package holds state.
package dynamo

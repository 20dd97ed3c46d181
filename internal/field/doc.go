// Package field provides the spatial primitives for advection simulations.
//
// The package defines structured grids, the scalar and vector fields that
// live on them, and the boundary policies that close the domain:
//
//   - [Grid]: 1D/2D/3D structured grid owning a two-slot scalar arena
//   - [Field]: dense row-major scalar view over one grid slot
//   - [VectorField]: one scalar component per grid axis
//   - [Policy]: boundary resolution strategy ([Periodic], [Clamp], [Fixed])
//   - [Boundaries]: per-axis policy composition
//
// # Buffering
//
// A Grid carves its current and next buffers out of one contiguous arena
// and exchanges them by flipping a slot index. Swap never copies cell data,
// so a step costs one integer write regardless of grid size. Fields
// returned by [Grid.Current] and [Grid.Next] alias the arena and are only
// valid until the next Swap.
//
// # Sampling
//
// Integer lookups out of range resolve through the axis policy: periodic
// wraps, clamp replicates the edge, fixed supplies a constant. Continuous
// positions are read with [Field.SampleAt], which interpolates linearly
// over the nearest nodes and reduces exactly to the stored value at
// integer positions.
//
// # Thread Safety
//
// Grids and fields are NOT thread-safe for mutation. Concurrent readers
// of a frozen buffer are safe, which is what the scheme worker loops rely
// on.
package field

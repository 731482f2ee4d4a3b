// Package physics holds the gravity model: bodies, the body registry and
// the pairwise force accumulator.
//
// Bodies live in a flat slice owned by [Registry]. Each tick the engine
// borrows that slice, runs [Accumulate] (or [AccumulateParallel]) to fill
// in accelerations, then hands it to an integrator which consumes and
// clears them.
//
// # Force law
//
// For a pair (i, j) with delta = pos_j - pos_i and d2 = |delta|^2, the pair
// contributes only when d2 exceeds both squared radii. The contribution is
//
//	F = G * m_i * m_j / d2
//	acc_i += delta * F / m_i
//	acc_j -= delta * F / m_j
//
// delta is used as-is, not normalised.
package physics

// Package tissue provides the core types shared by the deformation kernel.
//
// The package defines the value types exchanged between the mesh store,
// the contact resolver, and the solver:
//
//   - [Interaction]: per-frame snapshot of the probe (position, optional
//     contact normal, active flag, force magnitude)
//   - [StiffnessMode]: named Hard/Soft presets selecting spring, damping,
//     and interaction radius
//   - [DirectionRule] and [Falloff]: the configured push-direction and
//     influence-decay conventions
//
// # Thread Safety
//
// Everything here is a value snapshot; the caller builds a fresh
// [Interaction] each frame and the kernel never retains it.
package tissue

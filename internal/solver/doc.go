// Package solver advances the deformable mesh one explicit Euler step per
// frame under three additive forces: the probe's external force, a spring
// restoring each vertex to rest, and damping opposing velocity.
//
// Vertices are fully independent, with no neighbor coupling, so a step is
// O(vertex count) and parallelizes over contiguous index ranges with a
// single join before the frame publishes.
//
// [Engine] is the facade callers drive once per frame:
//
//	eng := solver.NewEngine(contact.ForNose(), tissue.ModeSoft)
//	eng.LoadMesh(positions, normals)
//	hit, _ := eng.Step(solver.ClampDt(dt), interaction)
package solver

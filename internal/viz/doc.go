// Package viz renders the deforming mesh in the terminal.
//
// The live view draws the vertex cloud on a Braille canvas next to a
// stats panel with a displacement history graph. The probe moves with
// WASD and Q/E, and the stiffness mode and force are adjustable while
// the simulation runs.
package viz

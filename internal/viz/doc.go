// Package viz is the terminal host for the mesh animator.
//
// The live view is a Bubble Tea program. Each tick advances the simulator
// once; the frame is rasterized at cell resolution and drawn as half-block
// cells, or traced as a braille wireframe.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Remount (restart the clock and the fade)
//	←/→   - Move the nav cursor, Enter follows the link
//	W     - Toggle wireframe
//	G     - Toggle GIF recording
//	S     - Save an SVG snapshot
//	T     - Cycle color themes
//	?     - Expand the help footer
//	Q     - Quit
//
// Nav labels can also be clicked. Recordings and snapshots go to Options.OutDir.
package viz

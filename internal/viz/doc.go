// Package viz renders particle fields in the terminal.
//
// Frames are drawn into a raster surface and printed as half-block cells:
// each character cell shows two vertically stacked pixels using truecolor
// foreground and background colours.
//
//   - [Model]: live view of one visualizer with a population sidebar
//   - [HalfBlock]: converts an RGBA frame into terminal cells
//   - Theme selection with 5 built-in colour schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	Tab   - Next visualizer
//	R     - Reseed the current visualizer
//	[ ]   - Previous/next stellar stage
//	T     - Cycle themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// Pressing G starts capturing frames; pressing it again writes
// cosmoviz-<visualizer>.gif to the current directory.
package viz

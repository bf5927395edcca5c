// Package viz renders a simulation in the terminal and turns mouse and
// keyboard input into edit commands, using the Bubble Tea framework:
//
//   - [Model]: live view of one simulation
//   - [Canvas]: Braille-based pixel canvas for sticks and points
//   - [Viewport]: world to canvas mapping
//   - Theme selection with 4 built-in color schemes
//
// # Controls
//
// While editing, a left click on empty space adds a point, a left drag from
// one point to another adds a stick, and a right click toggles a lock. While
// simulating, the anchor follows the mouse through a spring.
//
//	Space - Simulate / edit
//	A     - Toggle auto-chain
//	C     - Clear
//	R     - Anchor point 0 / release
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz

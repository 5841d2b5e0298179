// Package viz draws simulation snapshots for the terminal.
//
//   - [Canvas]: Braille-based pixel canvas, 2×4 dots per character cell
//   - [DrawSnapshot]: container walls, lid and atoms on a canvas
//   - lipgloss styles and a sparkline shared by the live views
package viz

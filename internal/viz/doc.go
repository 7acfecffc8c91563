// Package viz provides the interactive terminal front end.
//
// The package implements a TUI using the Bubble Tea framework. It never sorts
// anything itself: it asks an [Engine] to randomize or to run an algorithm and
// renders whatever the engine publishes.
//
//   - [Model]: algorithm menu, bar chart, status line and inversion chart
//   - [Forwarder]: observer that turns engine events into [StepMsg]
//   - Five bar-chart color schemes, cycled with t
//
// # Key Bindings
//
//	j/k     - Move through the algorithm menu
//	enter/s - Sort with the selected algorithm
//	r       - Randomize the sequence
//	t       - Cycle color themes
//	?       - Show help overlay
//	q       - Quit
package viz

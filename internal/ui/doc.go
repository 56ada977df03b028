// Package ui provides theme and color support for the watcher's user
// interfaces. It defines color schemes and ANSI escape code helpers for
// consistent styling across the CLI output and the TUI dashboard.
//
// This package is designed to be a shared dependency for packages that need
// color output, reducing coupling between observation logic and presentation.
package ui

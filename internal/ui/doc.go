// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for link conversion:
//  1. [ConvertView] : Monitor real-time conversion progress
//  2. [TargetListView] : Browse per-platform outcomes
//  3. [MatchListView] : Inspect matches and open one in the browser
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the ConvertEngine, providing non-blocking status reporting during conversions.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

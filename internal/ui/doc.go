// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing and interacting with videos:
//  1. [HomeView] : Browse the public video feed
//  2. [WatchView] : Watch a video with live counts, comments, and reactions
//  3. [ChannelView] : Manage the authenticated user's uploads
//  4. [ConfirmDeleteView] : Confirm a destructive channel operation
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via typed message structs.
// Mutations dispatch as tea.Cmd through a reconcile.WatchSession so that responses for stale video loads are discarded,
// and notifications render as a toast overlay with per-toast expiry driven by tea.Tick.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

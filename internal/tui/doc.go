/*
Package tui is the terminal host for the document viewer.

# Overview

The host is a bubbletea program that glues the core components together:

  - keybinds resolves key events to actions
  - tabs owns the open documents and the active session
  - viewer schedules page rasters and commits them
  - settings and recents persist preferences and history
  - remote accepts file hand-offs from later launches

# Event loop

All component state is mutated from Update. Blocking work (file reads,
page rasters, the update check) runs as commands and reports back
through messages. Render completions go through Session.CompleteRender,
which drops anything cancelled or superseded, so a stale raster can
never overwrite a newer one.

# Drawing

Pages draw as half-block cells: one text cell holds two vertical pixels.
In continuous mode a frame tick (about 30 fps) coalesces scroll events
into at most one visibility recompute per frame.
*/
package tui

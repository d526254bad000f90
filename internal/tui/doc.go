// Package tui implements the tome terminal reader.
//
// Built with Charmbracelet's BubbleTea, Lipgloss, and Bubbles
// libraries.
//
// Component architecture:
//
//	model.go      — root model, message routing, Init/Update
//	theme.go      — centralized color + style definitions
//	header.go     — top bar and status footer
//	render.go     — document tree → styled terminal text
//	toc.go        — chapter list (initial screen)
//	annotation.go — annotation open/close, panel and inline surfaces
//	surface.go    — width-based surface selection
//	helpers.go    — marker scanning, small string helpers
package tui

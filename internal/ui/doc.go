// Package ui implements the interactive bestekar demo using bubbletea's Elm architecture.
//
// The screen mirrors the marketing page: a lyrics editor, a style picker that fills in sample lyrics, a duration
// slider, the generate button, the simulated player and the sample preview cards.
//
// All domain state lives in the packages passed through [Deps]; the [Model] only routes input to them and renders.
// Timer callbacks from [clock.Loop] arrive as messages through a [Bridge], so they run inside Update like every
// other event and never race with rendering.
//
// Focus decides where keys go: tab cycles lyrics → style → duration → page. Page-level shortcuts (space, digits, t, g)
// are disabled while the lyrics editor has focus so typing is never hijacked.
package ui

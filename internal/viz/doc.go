// Package viz is the terminal front end for the gravity engine.
//
// It renders body snapshots onto a braille [Canvas] and translates mouse
// and keyboard input into engine calls:
//
//   - left press / hold / release: start, grow and commit a placement gesture
//   - right press: cancel the gesture
//   - space: clear all bodies, s: spawn a random batch
//   - p: pause, arrows: pan, +/-: zoom, g: energy graph, q: quit
//
// The package owns no physics. All coordinates handed to the engine are
// world coordinates produced by [View].
package viz

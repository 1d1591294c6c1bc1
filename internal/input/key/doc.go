// Package key describes decoded key presses: which key, which character
// for rune keys, and which modifiers were held.
//
// Events are converted from backend terminal events by the input package
// and never carry timing; the dispatcher measures latency itself.
package key

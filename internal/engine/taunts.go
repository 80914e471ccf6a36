// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package engine

var taunts = []string{
	"Interesting move... 🤔", "Bold strategy!", "I see what you're doing 👀",
	"Not bad!", "Hmm, let me think...", "Is that your best? 😏",
	"Clever!", "I expected that.", "Surprising choice!",
	"You're making this fun!", "Watch this...", "My turn! 🎯",
	"The pressure is on!", "You won't see this coming...",
	"That's what I would've done.", "Rookie mistake? 😉",
}

// Taunt returns one of the AI's one-liners.
func (e *Engine) Taunt() string {
	return taunts[e.Intn(len(taunts))]
}

// Taunts returns a copy of every taunt.
func Taunts() []string {
	out := make([]string, len(taunts))
	copy(out, taunts)
	return out
}

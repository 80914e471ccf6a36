// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package console

import (
	"context"
	"fmt"

	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/match"
)

// Battle shows an AI vs AI match move by move.
func (c *Console) Battle(ctx context.Context) (*match.Match, error) {
	header := fmt.Sprintf("🤖 AI Battle: Depth %d (%s) vs Depth %d (%s)",
		c.redDepth, c.style.Red, c.yellowDepth, c.style.Yellow)

	c.clearScreen()
	c.printf("\n%s\n\n", header)

	observe := func(mv match.Move, b game.Board) {
		c.clearScreen()
		c.println(header)
		c.printf("Move %d: %s → column %d\n", mv.Seq, c.style.Glyph(mv.Piece), mv.Column+1)
		c.render(b)
		// a cancelled sleep surfaces through the next search
		_ = c.sleep(ctx, c.pacing)
	}

	m, err := match.Battle(ctx, c.engine, c.redDepth, c.yellowDepth, observe)
	if err != nil {
		return m, err
	}

	switch m.Outcome() {
	case game.RedWins:
		c.printf("%s Depth %d WINS in %d moves! (Upset!)\n", c.style.Red, c.redDepth, m.MoveCount())
	case game.YellowWins:
		c.printf("%s Depth %d WINS in %d moves!\n", c.style.Yellow, c.yellowDepth, m.MoveCount())
	case game.Draw:
		c.printf("🤝 DRAW after %d moves!\n", m.MoveCount())
	}
	c.save(ctx, m)
	return m, nil
}

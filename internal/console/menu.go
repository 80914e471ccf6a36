// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package console

import (
	"context"
	"errors"
	"time"
)

const menuBanner = `╔════════════════════════════════════╗
║      🎮 CONNECT 4 vs AI 🤖         ║
╠════════════════════════════════════╣
║  [1]  Play vs AI                   ║
║  [2]  Watch AI vs AI               ║
║  [3]  Quit                         ║
╚════════════════════════════════════╝
`

// Run shows the main menu until the player quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.clearScreen()
		c.println(menuBanner)

		choice, err := c.prompt("Choose: ")
		if err != nil {
			return quietEOF(err)
		}

		switch choice {
		case "1":
			if err := c.Play(ctx); err != nil {
				return quietEOF(err)
			}
		case "2":
			if _, err := c.Battle(ctx); err != nil {
				return quietEOF(err)
			}
			if _, err := c.prompt("\nPress Enter to continue..."); err != nil {
				return quietEOF(err)
			}
		case "3", "q", "quit":
			c.println("\nThanks for playing! 👋\n")
			return nil
		default:
			c.println("Invalid choice.")
			if err := c.sleep(ctx, 500*time.Millisecond); err != nil {
				return err
			}
		}
	}
}

// quietEOF treats the end of input as a normal exit.
func quietEOF(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}

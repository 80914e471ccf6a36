// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ManuGH/connect4/internal/engine"
	"github.com/ManuGH/connect4/internal/game"
	"github.com/ManuGH/connect4/internal/match"
)

// Play runs human versus AI games until the player declines a rematch.
func (c *Console) Play(ctx context.Context) error {
	for {
		if _, err := c.PlayOnce(ctx); err != nil {
			return err
		}
		c.println("")
		again, err := c.prompt("Play again? (y/n): ")
		if err != nil {
			return err
		}
		if strings.ToLower(again) != "y" {
			return nil
		}
	}
}

// PlayOnce asks for a difficulty and plays a single game to its end.
func (c *Console) PlayOnce(ctx context.Context) (*match.Session, error) {
	c.clearScreen()
	c.printf("╔════════════════════════════════════╗\n")
	c.printf("║      🎮 CONNECT 4 vs AI 🤖         ║\n")
	c.printf("╠════════════════════════════════════╣\n")
	c.printf("║  You: %s    AI: %s                 ║\n", c.style.Red, c.style.Yellow)
	c.printf("║  Get 4 in a row to win!            ║\n")
	c.printf("╚════════════════════════════════════╝\n\n")

	d, err := c.chooseDifficulty()
	if err != nil {
		return nil, err
	}

	c.printf("\n🎯 Playing against %s! Good luck.\n\n", d.Name)
	if err := c.sleep(ctx, c.pacing); err != nil {
		return nil, err
	}

	sess := match.NewSession(c.engine, d)
	for !sess.Finished() {
		c.render(sess.Board())
		if err := c.humanTurn(sess); err != nil {
			return sess, err
		}
		if sess.Finished() {
			c.clearScreen()
			break
		}
		if err := c.aiTurn(ctx, sess); err != nil {
			return sess, err
		}
	}

	c.render(sess.Board())
	c.announce(sess, d)
	c.save(ctx, sess.Match)
	return sess, nil
}

func (c *Console) chooseDifficulty() (engine.Difficulty, error) {
	c.println("Select difficulty:")
	for _, d := range engine.Difficulties() {
		c.printf("  [%s] %s  (search depth %d)\n", d.Key, d.Label(), d.Depth)
	}
	c.println("")
	for {
		choice, err := c.prompt("Enter 1, 2, or 3: ")
		if err != nil {
			return engine.Difficulty{}, err
		}
		d, err := engine.LookupDifficulty(choice)
		if err == nil {
			return d, nil
		}
		c.println("Invalid. Try 1, 2, or 3.")
	}
}

func (c *Console) humanTurn(sess *match.Session) error {
	valid := sess.Board().ValidColumns()
	labels := make([]string, len(valid))
	for i, col := range valid {
		labels[i] = strconv.Itoa(col + 1)
	}
	c.printf("Your turn %s  (columns: %s)\n", c.style.Red, strings.Join(labels, ", "))

	for {
		raw, err := c.prompt(fmt.Sprintf("Drop in column (1-%d): ", game.Cols))
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.printf("Please enter a number 1-%d.\n", game.Cols)
			continue
		}
		_, err = sess.PlayHuman(n - 1)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, game.ErrColumnFull), errors.Is(err, game.ErrColumnOutOfRange):
			c.printf("Column %d is full or invalid. Try again.\n", n)
		default:
			return err
		}
	}
}

func (c *Console) aiTurn(ctx context.Context, sess *match.Session) error {
	c.printf("\n🤖 AI is thinking")
	turn, err := sess.PlayAI(ctx)
	if err != nil {
		c.println("")
		return err
	}
	if turn.Decision.Blunder {
		if err := c.sleep(ctx, c.pacing); err != nil {
			return err
		}
		c.println("...")
	} else {
		for range 3 {
			if err := c.sleep(ctx, c.pacing/2); err != nil {
				return err
			}
			c.printf(".")
		}
		c.println("")
	}

	c.clearScreen()
	c.printf("🤖 AI dropped in column %d. %s\n", turn.Move.Column+1, turn.Taunt)
	return nil
}

func (c *Console) announce(sess *match.Session, d engine.Difficulty) {
	switch sess.Outcome() {
	case game.RedWins:
		c.println("🎉🎉🎉  YOU WIN!  🎉🎉🎉")
		c.printf("You beat %s in %d moves!\n", d.Name, sess.MoveCount())
	case game.YellowWins:
		c.println("🤖  AI WINS!  Better luck next time.")
		c.printf("%s beat you in %d moves.\n", d.Name, sess.MoveCount())
	case game.Draw:
		c.println("🤝  It's a DRAW!")
	}
}

// Package console is a line-oriented actor that plays over any reader and
// writer pair, such as stdin/stdout or an SSH channel without a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samdwyer/cavecrawl/internal/game"
)

// QuitCommand ends the session when entered at the prompt.
const QuitCommand = ":quit"

// Actor reads one line per choice.
type Actor struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns an actor reading from r and writing to w.
func New(r io.Reader, w io.Writer) *Actor {
	return &Actor{in: bufio.NewReader(r), out: w}
}

// Choose prints the turn and reads the next line. End of input quits.
func (a *Actor) Choose(ctx context.Context, turn game.Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if turn.Rejected != "" {
		fmt.Fprintf(a.out, "Unknown action %q.\n", turn.Rejected)
	}
	a.printMessages(turn.Messages)

	fmt.Fprint(a.out, "Choose an action:\n\n")
	for _, action := range turn.Actions {
		fmt.Fprintln(a.out, action.String())
	}
	fmt.Fprint(a.out, "Action: ")

	line, err := a.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("console: read action: %w", err)
		}
		if line == "" {
			return "", game.ErrQuit
		}
	}
	line = strings.TrimRight(line, "\r\n")
	if line == QuitCommand {
		return "", game.ErrQuit
	}
	return line, nil
}

// Finish prints the last messages and the outcome.
func (a *Actor) Finish(_ context.Context, turn game.Turn) error {
	a.printMessages(turn.Messages)
	switch turn.State {
	case game.StateDead:
		fmt.Fprintln(a.out, "You have died.")
	case game.StateVictorious:
		fmt.Fprintf(a.out, "You escaped the cave with %d gold.\n", turn.Gold)
	}
	return nil
}

func (a *Actor) printMessages(msgs []string) {
	for _, m := range msgs {
		if m == "" {
			continue
		}
		fmt.Fprintln(a.out, m)
		fmt.Fprintln(a.out)
	}
}

package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavecrawl/internal/game"
)

// maxLog bounds the message history kept for redraws.
const maxLog = 200

// Actor plays a session on a tcell screen. Letter keys select actions;
// Escape and Ctrl-C quit.
type Actor struct {
	screen   *Screen
	renderer *Renderer
	log      []string
}

// NewActor returns an actor drawing on screen.
func NewActor(screen *Screen) *Actor {
	return &Actor{screen: screen, renderer: NewRenderer(screen)}
}

// Choose draws turn and waits for a key. A terminal read error, such as a
// dropped SSH client, counts as quitting.
func (a *Actor) Choose(ctx context.Context, turn game.Turn) (string, error) {
	a.record(turn.Messages)
	a.renderer.Render(turn, a.log, "")
	defer a.interruptOnDone(ctx)()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		switch ev := a.screen.PollEvent().(type) {
		case nil, *tcell.EventError:
			return "", game.ErrQuit
		case *tcell.EventInterrupt:
			// Posted by interruptOnDone; the loop head reports ctx.Err().
		case *tcell.EventResize:
			a.screen.Sync()
			a.renderer.Render(turn, a.log, "")
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return "", game.ErrQuit
			case tcell.KeyRune:
				return string(ev.Rune()), nil
			}
		}
	}
}

// Finish draws the final turn and waits for any key.
func (a *Actor) Finish(ctx context.Context, turn game.Turn) error {
	a.record(turn.Messages)
	a.renderer.Render(turn, a.log, outcome(turn))
	defer a.interruptOnDone(ctx)()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch a.screen.PollEvent().(type) {
		case nil, *tcell.EventKey, *tcell.EventError:
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
			a.renderer.Render(turn, a.log, outcome(turn))
		}
	}
}

// interruptOnDone wakes a blocked PollEvent when ctx ends. The returned
// func stops the watcher.
func (a *Actor) interruptOnDone(ctx context.Context) func() {
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()
	return func() { close(stop) }
}

func (a *Actor) record(msgs []string) {
	for _, m := range msgs {
		if m != "" {
			a.log = append(a.log, m)
		}
	}
	if len(a.log) > maxLog {
		a.log = a.log[len(a.log)-maxLog:]
	}
}

func outcome(turn game.Turn) string {
	switch turn.State {
	case game.StateDead:
		return "You have died. Press any key."
	case game.StateVictorious:
		return "You escaped the cave! Press any key."
	default:
		return "Press any key."
	}
}

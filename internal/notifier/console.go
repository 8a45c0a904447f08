package notifier

import (
	"context"
	"fmt"
	"io"
)

// Console prints notifications; errors go to the error writer
type Console struct {
	out io.Writer
	err io.Writer
}

// NewConsole creates a console notifier writing to out and errOut
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{out: out, err: errOut}
}

// Notify prints the message
func (c *Console) Notify(ctx context.Context, msg Message) error {
	w := c.out
	if msg.Level == LevelError {
		w = c.err
	}
	_, err := fmt.Fprintln(w, msg.Text())
	return err
}

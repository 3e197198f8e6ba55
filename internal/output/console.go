package output

import (
	"fmt"
	"io"
)

// Console narrates publish steps to a writer. It implements
// publish.Observer.
type Console struct {
	out io.Writer
}

// NewConsole creates a console observer writing to out.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{out: out}
}

func (c *Console) StepStart(name string) {
	fmt.Fprintf(c.out, "-> %s\n", name)
}

func (c *Console) StepDone(name string) {
	fmt.Fprintf(c.out, "   ok\n")
}

func (c *Console) StepSkipped(name, reason string) {
	fmt.Fprintf(c.out, "-- %s (skipped: %s)\n", name, reason)
}

func (c *Console) StepFailed(name string, err error) {
	fmt.Fprintf(c.out, "   failed: %v\n", err)
}

func (c *Console) Notef(format string, args ...any) {
	fmt.Fprintf(c.out, "   %s\n", fmt.Sprintf(format, args...))
}

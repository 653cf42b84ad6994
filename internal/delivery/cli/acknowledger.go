package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// terminalAcknowledger печатает итог отправки и ждёт Enter, прежде чем вернуть управление.
type terminalAcknowledger struct {
	in   *bufio.Reader
	out  io.Writer
	wait bool
}

func newTerminalAcknowledger(in io.Reader, out io.Writer, wait bool) *terminalAcknowledger {
	return &terminalAcknowledger{
		in:   bufio.NewReader(in),
		out:  out,
		wait: wait,
	}
}

func (a *terminalAcknowledger) Acknowledge(_ context.Context, message string) {
	fmt.Fprintln(a.out, message)

	if !a.wait {
		return
	}

	fmt.Fprint(a.out, "Press Enter to continue...")
	// EOF тоже считается подтверждением
	_, _ = a.in.ReadString('\n')
	fmt.Fprintln(a.out)
}

package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// TextScreen is the one reference Screen backend VaultGate ships — a
// minimal line-oriented terminal UI standing in for the three real TUI
// backends (§9), which are out of scope. It is intentionally plain:
// the point is to exercise the Screen contract end to end, not to
// reproduce any particular TUI's look.
type TextScreen struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal file descriptor for no-echo reads; -1 if not a TTY
}

// NewTextScreen builds a TextScreen reading from in and writing to out.
// fd is the file descriptor backing in, used for term.ReadPassword; pass
// -1 when in isn't a real terminal (e.g. piped test input).
func NewTextScreen(in io.Reader, out io.Writer, fd int) *TextScreen {
	return &TextScreen{in: bufio.NewReader(in), out: out, fd: fd}
}

// NewStdioTextScreen wires a TextScreen to the process's stdin/stdout.
func NewStdioTextScreen() *TextScreen {
	return NewTextScreen(os.Stdin, os.Stdout, int(os.Stdin.Fd()))
}

func (s *TextScreen) ReadPassword(ctx context.Context) ([]byte, bool, error) {
	fmt.Fprint(s.out, "credential: ")

	if s.fd >= 0 && term.IsTerminal(s.fd) {
		pw, err := term.ReadPassword(s.fd)
		fmt.Fprintln(s.out)
		if err != nil {
			return nil, false, err
		}
		if len(pw) == 0 {
			return nil, false, nil
		}
		return pw, true, nil
	}

	line, err := s.in.ReadString('\n')
	if err != nil && len(line) == 0 {
		return nil, false, nil
	}
	line = trimNewline(line)
	if line == "" {
		return nil, false, nil
	}
	return []byte(line), true, nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func (s *TextScreen) ShowRemainingAttempts(remaining int) {
	fmt.Fprintf(s.out, "incorrect credential: %d attempt(s) remaining\n", remaining)
}

func (s *TextScreen) ShowGranted() {
	fmt.Fprintln(s.out, "access granted")
}

func (s *TextScreen) ShowCountdown(seconds int) {
	fmt.Fprintf(s.out, "attempts exhausted: destroying target device in %ds\n", seconds)
}

func (s *TextScreen) ShowProgress(p Progress) {
	fmt.Fprintf(s.out, "[%s] pass %d/%d: %d/%d bytes (%s)\n",
		p.Phase, p.CurrentPass, p.TotalPasses, p.BytesDone, p.BytesTotal, p.Description)
}

func (s *TextScreen) ShowWarning(message string) {
	fmt.Fprintf(s.out, "warning: %s\n", message)
}

func (s *TextScreen) ShowStatus(message string) {
	fmt.Fprintln(s.out, message)
}

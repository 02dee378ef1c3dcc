// Package prompt implements the yes/no confirmation and acknowledgment
// steps that guard bulk destructive operations.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// Prompter asks the user to confirm an action and shows short notices.
type Prompter interface {
	Confirm(message string) (bool, error)
	Alert(message string) error
}

// Terminal prompts on a TTY with promptui. When stdin is not a terminal it
// answers no, so scripted use never deletes without --yes.
type Terminal struct {
	In  io.ReadCloser
	Out io.WriteCloser
	// IsTTY overrides terminal detection when non-nil.
	IsTTY func() bool
}

func (t *Terminal) interactive() bool {
	if t.IsTTY != nil {
		return t.IsTTY()
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (t *Terminal) Confirm(message string) (bool, error) {
	if !t.interactive() {
		fmt.Fprintf(t.out(), "%s [y/N]: no (not a terminal, use --yes)\n", message)
		return false, nil
	}
	p := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
		Stdin:     t.In,
		Stdout:    t.Out,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (t *Terminal) Alert(message string) error {
	_, err := fmt.Fprintln(t.out(), message)
	return err
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stdout
}

// Static answers every confirmation with Answer and writes alerts to Out.
type Static struct {
	Answer bool
	Out    io.Writer
}

// Always confirms everything.
func Always(out io.Writer) *Static { return &Static{Answer: true, Out: out} }

// Never declines everything.
func Never(out io.Writer) *Static { return &Static{Answer: false, Out: out} }

func (s *Static) Confirm(string) (bool, error) { return s.Answer, nil }

func (s *Static) Alert(message string) error {
	if s.Out == nil {
		return nil
	}
	_, err := fmt.Fprintln(s.Out, message)
	return err
}

// Script replays canned answers and records what was asked.
type Script struct {
	Answers   []bool
	Confirmed []string
	Alerts    []string
}

func (s *Script) Confirm(message string) (bool, error) {
	s.Confirmed = append(s.Confirmed, message)
	if len(s.Answers) == 0 {
		return false, nil
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

func (s *Script) Alert(message string) error {
	s.Alerts = append(s.Alerts, message)
	return nil
}

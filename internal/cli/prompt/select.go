// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/aisw/internal/errors"
)

// Sentinel errors for interactive selection.
var (
	ErrNoOptions          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Option is one selectable entry.
type Option struct {
	Label  string
	Detail string
}

// Selector handles numbered selection and confirmation prompts.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Select prompts the user to choose one of options and returns its index.
//
// Returns:
//   - ErrNoOptions if the list is empty
//   - 0 without prompting if only one option exists
//   - ErrInvalidSelection if the input is not a number in range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
//
// Pressing enter selects the first option.
func (s *Selector) Select(title string, options []Option) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}
	if len(options) == 1 {
		return 0, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, o := range options {
		if o.Detail != "" {
			fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, o.Label, o.Detail)
		} else {
			fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, o.Label)
		}
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.readLine()
	if err != nil {
		return 0, err
	}
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(options) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(options))
	}
	return selection - 1, nil
}

// Confirm asks a yes/no question. Anything other than y or yes is no.
func (s *Selector) Confirm(question string) (bool, error) {
	fmt.Fprintf(s.writer, "%s [y/N]: ", question)
	input, err := s.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (s *Selector) readLine() (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading selection")
		}
	}
	return strings.TrimSpace(line), nil
}

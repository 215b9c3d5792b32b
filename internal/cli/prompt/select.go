// Package prompt provides interactive CLI prompts for choosing scene objects.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/meshkit/internal/errors"
	"github.com/thoreinstein/meshkit/internal/scene"
)

// Sentinel errors for object selection.
var (
	ErrNoObjects          = errors.New("no objects to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles numbered object selection prompts. It is the fallback
// when stdin is not a terminal and the fuzzy finder cannot run.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stderr.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stderr,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectObjects prompts the user to choose any number of objects by
// number, separated by commas or spaces. The result keeps document order.
//
// Returns:
//   - ErrNoObjects if the list is empty
//   - The object if only one exists (auto-selects without prompting)
//   - Every object if the input is empty
//   - ErrInvalidSelection if a number is malformed or out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectObjects(objs []*scene.Object) ([]*scene.Object, error) {
	if len(objs) == 0 {
		return nil, ErrNoObjects
	}

	// Auto-select if only one object
	if len(objs) == 1 {
		return objs, nil
	}

	// Display selection prompt
	fmt.Fprintln(s.writer, "Objects:")
	for i, o := range objs {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, o.Name, o.Kind())
	}
	fmt.Fprintf(s.writer, "Select [all]: ")

	// Read user input
	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Default to everything if empty
	if input == "" {
		return objs, nil
	}

	var picked []int
	for _, field := range strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", field)
		}
		// Validate range (1-indexed)
		if n < 1 || n > len(objs) {
			return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(objs))
		}
		if !slices.Contains(picked, n-1) {
			picked = append(picked, n-1)
		}
	}

	return ordered(objs, picked), nil
}

// ordered returns objs[i] for each index, in document order.
func ordered(objs []*scene.Object, idxs []int) []*scene.Object {
	sorted := slices.Clone(idxs)
	slices.Sort(sorted)
	out := make([]*scene.Object, 0, len(sorted))
	for _, i := range sorted {
		out = append(out, objs[i])
	}
	return out
}

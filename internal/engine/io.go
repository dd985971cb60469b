package engine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input supplies values for read statements. Next is called once per
// identifier, with that identifier's name.
type Input interface {
	Next(name string) (int32, error)
}

// Output receives the lines produced by write statements.
type Output interface {
	Emit(line string) error
}

// SliceInput serves a fixed list of values in order.
type SliceInput struct {
	values []int32
	next   int
}

func NewSliceInput(values ...int32) *SliceInput {
	return &SliceInput{values: values}
}

func (in *SliceInput) Next(string) (int32, error) {
	if in.next >= len(in.values) {
		return 0, ErrInputExhausted
	}
	v := in.values[in.next]
	in.next++
	return v, nil
}

func (in *SliceInput) Remaining() int {
	return len(in.values) - in.next
}

// ParseInputFile reads one decimal int32 per line. Blank lines are skipped.
func ParseInputFile(r io.Reader) ([]int32, error) {
	var values []int32
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("input line %d: %q is not a 32-bit integer", line, text)
		}
		values = append(values, int32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// PromptInput asks for each value interactively as "NAME =? " and keeps
// asking until it gets a valid integer. A closed stream cannot supply
// another line, so end of input returns ErrInputExhausted instead of
// waiting for more.
type PromptInput struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPromptInput(in io.Reader, out io.Writer) *PromptInput {
	return NewPromptInputFromScanner(bufio.NewScanner(in), out)
}

// NewPromptInputFromScanner reads answers from a scanner that the caller
// also reads from, so both see the same lines in order.
func NewPromptInputFromScanner(scanner *bufio.Scanner, out io.Writer) *PromptInput {
	return &PromptInput{scanner: scanner, out: out}
}

func (p *PromptInput) Next(name string) (int32, error) {
	for {
		fmt.Fprintf(p.out, "%s =? ", name)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, ErrInputExhausted
		}
		text := strings.TrimSpace(p.scanner.Text())
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			fmt.Fprintf(p.out, "%q is not an integer, try again\n", text)
			continue
		}
		return int32(v), nil
	}
}

// WriterOutput prints each line as soon as it is produced.
type WriterOutput struct {
	w io.Writer
}

func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

func (o *WriterOutput) Emit(line string) error {
	_, err := fmt.Fprintln(o.w, line)
	return err
}

// BufferedOutput collects lines until Flush.
type BufferedOutput struct {
	lines []string
}

func (o *BufferedOutput) Emit(line string) error {
	o.lines = append(o.lines, line)
	return nil
}

func (o *BufferedOutput) Lines() []string {
	return o.lines
}

func (o *BufferedOutput) Flush(w io.Writer) error {
	for _, line := range o.lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	o.lines = nil
	return nil
}

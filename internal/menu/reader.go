// Package menu implements the interactive terminal surface: prompted
// line input with validation retries, and the numbered menu screens.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tasky/internal/dateutil"
)

// Reader reads line-oriented input from a terminal. Invalid input is
// re-prompted in a loop; once the input stream ends every read returns
// its zero value and EOF reports true.
type Reader struct {
	scanner *bufio.Scanner
	out     io.Writer
	eof     bool
}

func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{scanner: bufio.NewScanner(in), out: out}
}

// EOF reports whether the input stream has ended.
func (r *Reader) EOF() bool {
	return r.eof
}

// ReadString prints the prompt and returns the next input line.
func (r *Reader) ReadString(prompt string) string {
	if r.eof {
		return ""
	}
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		r.eof = true
		return ""
	}
	return r.scanner.Text()
}

// ReadInt prompts until the user enters an integer.
func (r *Reader) ReadInt(prompt string) int {
	for {
		line := r.ReadString(prompt)
		if r.eof {
			return 0
		}
		value, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(r.out, "Please enter a valid integer.")
			continue
		}
		return value
	}
}

// ReadIntRange prompts until the user enters an integer in [min, max].
func (r *Reader) ReadIntRange(prompt string, min, max int) int {
	for {
		value := r.ReadInt(prompt)
		if r.eof {
			return 0
		}
		if value < min || value > max {
			fmt.Fprintln(r.out, "Please enter a valid integer within the specified range.")
			continue
		}
		return value
	}
}

// ReadDate prompts until the user enters a calendar date in YYYY-MM-DD
// form.
func (r *Reader) ReadDate(prompt string) string {
	for {
		date := r.ReadString(prompt)
		if r.eof {
			return ""
		}
		if !dateutil.IsValid(date) {
			fmt.Fprintln(r.out, "Please enter a valid date in the format YYYY-MM-DD.")
			continue
		}
		return date
	}
}

// ReadTags prompts once and splits the line on commas.
func (r *Reader) ReadTags(prompt string) []string {
	return ParseTags(r.ReadString(prompt))
}

// ParseTags splits a comma-separated tag line. Fields are not trimmed,
// and an empty line yields a single empty tag, matching the stored form.
func ParseTags(input string) []string {
	return strings.Split(input, ",")
}

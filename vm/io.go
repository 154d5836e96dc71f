package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultWrite returns a Hooks.Write that prints each value as a
// decimal line to w.
func DefaultWrite(w io.Writer) func(int32) {
	bw := bufio.NewWriter(w)
	return func(v int32) {
		fmt.Fprintln(bw, v)
		bw.Flush()
	}
}

// DefaultRead returns a Hooks.Read that reads one line from r and
// parses it as a decimal integer. It reports ok=false on EOF or a
// malformed line, matching the original implementation's behavior of
// falling back to zero rather than aborting the program.
func DefaultRead(r io.Reader) func() (int32, bool) {
	scanner := bufio.NewScanner(r)
	return func() (int32, bool) {
		if !scanner.Scan() {
			return 0, false
		}
		n, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 32)
		if err != nil {
			return 0, false
		}
		return int32(n), true
	}
}

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question on out and reads the answer from in.
// Anything but "y" or "yes" declines.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

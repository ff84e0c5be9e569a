package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Confirm prompts the user with a yes/no question. Returns true for yes.
func Confirm(prompt string) bool {
	return ConfirmFrom(os.Stdin, os.Stdout, StyleWarning.Render(prompt))
}

// ConfirmDanger is like Confirm but styled with the error color (for
// irreversible actions such as broadcasting a transaction).
func ConfirmDanger(prompt string) bool {
	return ConfirmFrom(os.Stdin, os.Stdout, StyleError.Render("⚠ "+prompt))
}

// ConfirmFrom writes prompt to w and reads one answer line from r.
// Only "y" and "yes" (any case) count as yes.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(r).ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}

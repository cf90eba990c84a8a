// File: pkg/console/console.go
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const termWidth = 76

// Console is the operator's terminal: line prompts, masked password entry and menu output.
// Any reader and writer work; masking and screen clearing only happen on a real terminal.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	inFd   int
	isTerm bool

	errStyle lipgloss.Style
	okStyle  lipgloss.Style
	hdrStyle lipgloss.Style
}

// New wraps in and out.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{
		in:   bufio.NewReader(in),
		out:  out,
		inFd: -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.inFd = int(f.Fd())
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.isTerm = true
	}

	r := lipgloss.NewRenderer(out)
	c.errStyle = r.NewStyle().Foreground(lipgloss.Color("9"))
	c.okStyle = r.NewStyle().Foreground(lipgloss.Color("10"))
	c.hdrStyle = r.NewStyle().Bold(true)
	return c
}

// ReadLine prints prompt and reads one line of text, trimmed.
// io.EOF is returned once the input is exhausted.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadLineDefault is ReadLine with a value used when the operator just presses Enter.
func (c *Console) ReadLineDefault(label, def string) (string, error) {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	input, err := c.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	if input == "" {
		return def, nil
	}
	return input, nil
}

// ReadPassword prints prompt and reads a password without echo when attached to a terminal.
// Only the line ending is stripped.
func (c *Console) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if c.inFd >= 0 {
		b, err := term.ReadPassword(c.inFd)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := c.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Clear wipes the screen. It does nothing when output is not a terminal.
func (c *Console) Clear() {
	if c.isTerm {
		fmt.Fprint(c.out, "\033[H\033[2J")
	}
}

// MenuLine prints a full-width separator, with title centred in it when given.
func (c *Console) MenuLine(char, title string) {
	if title == "" {
		fmt.Fprintln(c.out, strings.Repeat(char, termWidth))
		return
	}
	padding := (termWidth - len(title) - 2) / 2
	if padding < 0 {
		padding = 0
	}
	rightPadding := termWidth - len(title) - padding - 2
	if rightPadding < 0 {
		rightPadding = 0
	}
	fmt.Fprintln(c.out, strings.Repeat(char, padding), c.hdrStyle.Render(title), strings.Repeat(char, rightPadding))
}

func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Errorf prints a ">> " prefixed error line.
func (c *Console) Errorf(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.errStyle.Render(">> "+fmt.Sprintf(format, a...)))
}

// Successf prints a ">> " prefixed confirmation line.
func (c *Console) Successf(format string, a ...interface{}) {
	fmt.Fprintln(c.out, c.okStyle.Render(">> "+fmt.Sprintf(format, a...)))
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter asks the user for account fields and post bodies. It shares the
// REPL's buffered reader so typed-ahead input is not lost between commands.
type prompter struct {
	in  *bufio.Reader
	out io.Writer

	// secret reads a password. Nil means the controlling terminal.
	secret func() ([]byte, error)
}

func newPrompter(in *bufio.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out}
}

// field asks for a single value on the same line as its label, e.g.
// "username: ". A final line without '\n' still counts.
func (p *prompter) field(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimSpace(line), nil
}

// password asks for a secret without echoing it. When stdin is not a
// terminal (piped input, scripts) it falls back to reading a plain line.
// The caller wipes the returned slice.
func (p *prompter) password() ([]byte, error) {
	read := p.secret
	if read == nil {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			s, err := p.field("password")
			return []byte(s), err
		}
		read = func() ([]byte, error) { return term.ReadPassword(fd) }
	}

	fmt.Fprint(p.out, "password: ")
	pw, err := read()
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(pw) == 0 {
		return nil, errors.New("password must not be empty")
	}
	return pw, nil
}

// body reads a post: every line up to the first blank one, or EOF.
func (p *prompter) body() (string, error) {
	fmt.Fprintln(p.out, "Write your post, finish with an empty line:")

	var b strings.Builder
	for {
		line, err := p.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(b.String()), nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter asks for option values on a terminal. An empty answer, or end of
// input, accepts the default.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(help, def string) (string, error) {
	fmt.Fprintf(p.out, "\n\n-----------------------\n%s\nDefault: %s\n\n", help, def)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) String(help, def string) (string, error) {
	shown := def
	if shown == "" {
		shown = "<NONE>"
	}
	answer, err := p.ask(help, shown)
	if err != nil || answer == "" {
		return def, err
	}
	return answer, nil
}

func (p *prompter) Float(help string, def float64) (float64, error) {
	for {
		answer, err := p.ask(help, strconv.FormatFloat(def, 'g', -1, 64))
		if err != nil || answer == "" {
			return def, err
		}
		f, perr := strconv.ParseFloat(answer, 64)
		if perr == nil {
			return f, nil
		}
		fmt.Fprintln(p.out, "Could not convert input to a number. Try again!")
	}
}

func (p *prompter) Int(help string, def int) (int, error) {
	for {
		answer, err := p.ask(help, strconv.Itoa(def))
		if err != nil || answer == "" {
			return def, err
		}
		n, perr := strconv.Atoi(answer)
		if perr == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Could not convert input to a number. Try again!")
	}
}

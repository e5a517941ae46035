package rho

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// maxToken bounds a single whitespace-separated token.
const maxToken = 1 << 20

// tokens reads whitespace-separated numbers, tracking how many were consumed
// for error messages.
type tokens struct {
	sc   *bufio.Scanner
	read int
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxToken)
	sc.Split(bufio.ScanWords)
	return &tokens{sc: sc}
}

func (t *tokens) next(what string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %v: %w", what, err, domain.ErrMalformedData)
		}
		return "", fmt.Errorf("unexpected end of file reading %s after %d tokens: %w",
			what, t.read, domain.ErrMalformedData)
	}
	t.read++
	return t.sc.Text(), nil
}

func (t *tokens) float(what string) (float64, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("token %d (%s): %q is not a number: %w", t.read, what, tok, domain.ErrMalformedData)
	}
	return v, nil
}

func (t *tokens) int(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("token %d (%s): %q is not an integer: %w", t.read, what, tok, domain.ErrMalformedData)
	}
	return v, nil
}

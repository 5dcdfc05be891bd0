// Package wavefront parses the Wavefront OBJ geometry format and its MTL
// material libraries into flat, renderer agnostic records.
//
// Only polygonal geometry is supported: points, lines, curves and surfaces are
// ignored. Faces are fan-triangulated and every model carries a single index
// list addressing positions, normals and texture coordinates alike.
package wavefront

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is matched by every grammar error returned by this package.
var ErrSyntax = errors.New("wavefront: syntax error")

const maxLineSize = 16 * 1024 * 1024

// SyntaxError reports a malformed statement.
type SyntaxError struct {
	Format string
	Line   int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("wavefront: %s line %d: %s", e.Format, e.Line, e.Msg)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// scanLines calls fn for every non-empty, non-comment line split in fields.
func scanLines(r io.Reader, format string, fn func(line int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := fn(line, fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &SyntaxError{Format: format, Line: line + 1, Msg: err.Error()}
	}
	return nil
}

func parseFloats(format string, line int, keyword string, fields []string, out []float32) error {
	for i := range out {
		val, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return &SyntaxError{Format: format, Line: line, Msg: fmt.Sprintf("'%s' invalid number %q", keyword, fields[i])}
		}
		out[i] = float32(val)
	}
	return nil
}

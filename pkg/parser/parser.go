// Package parser reads the two line commands of the vertex cover driver:
//
//	V <count>
//	E {<a,b>,<c,d>,...}
//
// Integers are written in decimal without sign nor leading zeros.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/limaJavier/vertexcover/pkg/graph"
)

var ErrMalformed = errors.New("malformed command")

// SyntaxError reports where a line stopped matching the grammar
type SyntaxError struct {
	Line   string
	Offset int
	Msg    string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("%v at column %d", err.Msg, err.Offset+1)
}

func (err *SyntaxError) Unwrap() error {
	return ErrMalformed
}

type Command interface {
	command()
}

type VertexCountCommand struct {
	Count uint64
}

type EdgesCommand struct {
	Edges []graph.Edge
}

func (VertexCountCommand) command() {}
func (EdgesCommand) command()       {}

// Parse reads a single command. Vertex indexes of an edge command are checked to be positive only,
// the upper bound depends on the previously declared vertex count
func Parse(line string) (Command, error) {
	scanner := &scanner{line: line}
	switch scanner.peek() {
	case 'V':
		return scanner.vertexCount()
	case 'E':
		return scanner.edges()
	}
	return nil, scanner.errorf("unknown command, expecting 'V' or 'E'")
}

type scanner struct {
	line     string
	position int
}

func (s *scanner) peek() byte {
	if s.position >= len(s.line) {
		return 0
	}
	return s.line[s.position]
}

func (s *scanner) expect(char byte) error {
	if s.peek() != char {
		return s.errorf("expecting '%c'", char)
	}
	s.position++
	return nil
}

func (s *scanner) end() error {
	if s.position != len(s.line) {
		return s.errorf("unexpected trailing characters")
	}
	return nil
}

func (s *scanner) errorf(format string, args ...any) error {
	return &SyntaxError{Line: s.line, Offset: s.position, Msg: fmt.Sprintf(format, args...)}
}

// vertexCount := 'V' ' ' integer
func (s *scanner) vertexCount() (Command, error) {
	if err := s.expect('V'); err != nil {
		return nil, err
	}
	if err := s.expect(' '); err != nil {
		return nil, err
	}
	count, err := s.integer()
	if err != nil {
		return nil, err
	}
	if err := s.end(); err != nil {
		return nil, err
	}
	if count < 2 {
		return nil, &SyntaxError{Line: s.line, Offset: 2, Msg: "there should be at least 2 vertices"}
	}
	return VertexCountCommand{Count: count}, nil
}

// edges := 'E' ' ' '{' [ edge { ',' edge } ] '}'
func (s *scanner) edges() (Command, error) {
	for _, char := range []byte("E {") {
		if err := s.expect(char); err != nil {
			return nil, err
		}
	}

	edges := make([]graph.Edge, 0)
	if s.peek() != '}' {
		for {
			edge, err := s.edge()
			if err != nil {
				return nil, err
			}
			edges = append(edges, edge)

			if s.peek() != ',' {
				break
			}
			s.position++
		}
	}

	if err := s.expect('}'); err != nil {
		return nil, err
	}
	if err := s.end(); err != nil {
		return nil, err
	}
	return EdgesCommand{Edges: edges}, nil
}

// edge := '<' vertex ',' vertex '>'
func (s *scanner) edge() (graph.Edge, error) {
	if err := s.expect('<'); err != nil {
		return graph.Edge{}, err
	}
	vertex1, err := s.vertex()
	if err != nil {
		return graph.Edge{}, err
	}
	if err := s.expect(','); err != nil {
		return graph.Edge{}, err
	}
	vertex2, err := s.vertex()
	if err != nil {
		return graph.Edge{}, err
	}
	if err := s.expect('>'); err != nil {
		return graph.Edge{}, err
	}
	return graph.Edge{vertex1, vertex2}, nil
}

func (s *scanner) vertex() (uint64, error) {
	start := s.position
	vertex, err := s.integer()
	if err != nil {
		return 0, err
	}
	if vertex == 0 {
		return 0, &SyntaxError{Line: s.line, Offset: start, Msg: "vertex index should be greater than 0"}
	}
	return vertex, nil
}

// integer := '0' | nonZeroDigit { digit }
func (s *scanner) integer() (uint64, error) {
	start := s.position
	for s.position < len(s.line) && s.line[s.position] >= '0' && s.line[s.position] <= '9' {
		s.position++
	}

	digits := s.line[start:s.position]
	if digits == "" {
		return 0, s.errorf("expecting an integer")
	}
	if len(digits) > 1 && digits[0] == '0' {
		return 0, &SyntaxError{Line: s.line, Offset: start, Msg: "leading zeros are not allowed"}
	}

	value, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || value > math.MaxInt32 {
		return 0, &SyntaxError{Line: s.line, Offset: start, Msg: fmt.Sprintf("integer %v out of range", digits)}
	}
	return value, nil
}

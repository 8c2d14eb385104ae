package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/limaJavier/vertexcover/pkg/cover"
	"github.com/limaJavier/vertexcover/pkg/graph"
	"github.com/limaJavier/vertexcover/pkg/parser"
	"github.com/spf13/cobra"
)

var errIncompleteGraph = errors.New("expecting a 'V' line followed by an 'E' line")

func newDimacsCommand() *cobra.Command {
	var size uint64

	command := &cobra.Command{
		Use:   "dimacs",
		Short: "Print the CNF asking for a vertex cover of a given size",
		Long: `dimacs reads a single graph ('V' then 'E' line) from the standard input and writes,
in DIMACS format, the CNF satisfiable exactly when the graph has a vertex cover of
--size vertices. Variables 1..V select the vertices of the cover.`,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, _ []string) error {
			g, err := readGraph(command.InOrStdin())
			if err != nil {
				return err
			}
			if size > g.VertexCount() {
				return fmt.Errorf("size %d exceeds the vertex count %d", size, g.VertexCount())
			}

			satInstance, _ := cover.EncodeCoverOfSize(g, size)
			_, err = fmt.Fprint(command.OutOrStdout(), satInstance.ToDIMACS())
			return err
		},
	}

	command.Flags().Uint64VarP(&size, "size", "k", 1, "Number of vertices of the cover")
	return command
}

func readGraph(in io.Reader) (*graph.Graph, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var vertexCount uint64
	for scanner.Scan() {
		line := strings.Trim(scanner.Text(), " ")
		if line == "" {
			continue
		}

		command, err := parser.Parse(line)
		if err != nil {
			return nil, err
		}

		switch command := command.(type) {
		case parser.VertexCountCommand:
			if vertexCount != 0 {
				return nil, errIncompleteGraph
			}
			vertexCount = command.Count
		case parser.EdgesCommand:
			if vertexCount == 0 {
				return nil, errIncompleteGraph
			}
			return graph.NewGraph(vertexCount, command.Edges)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errIncompleteGraph
}

package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseDIMACS reads a DIMACS-CNF instance. Clauses may span several lines, each one is terminated by a 0
func ParseDIMACS(reader io.Reader) (SAT, error) {
	var sat SAT
	var clause []int64
	headerFound := false
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		// Some generators append a "%" line at the end of the instance
		if strings.HasPrefix(line, "%") {
			break
		}
		// Problem line
		if strings.HasPrefix(line, "p") {
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[1] != "cnf" {
				return SAT{}, fmt.Errorf("invalid problem line: %s", line)
			}
			variables, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return SAT{}, fmt.Errorf("invalid variable count: %w", err)
			}
			sat.Variables = variables
			headerFound = true
			continue
		}
		if !headerFound {
			return SAT{}, fmt.Errorf("clause found before problem line: %s", line)
		}

		// Clause line
		for _, literalStr := range strings.Fields(line) {
			literal, err := strconv.ParseInt(literalStr, 10, 64)
			if err != nil {
				return SAT{}, fmt.Errorf("invalid literal '%s': %w", literalStr, err)
			}
			if literal == 0 {
				sat.Clauses = append(sat.Clauses, clause)
				clause = nil
				continue
			}
			if variable := uint64(max(literal, -literal)); variable > sat.Variables {
				return SAT{}, fmt.Errorf("literal %d exceeds the declared variable count %d", literal, sat.Variables)
			}
			clause = append(clause, literal)
		}
	}

	if err := scanner.Err(); err != nil {
		return SAT{}, fmt.Errorf("error reading DIMACS input: %w", err)
	}
	if !headerFound {
		return SAT{}, fmt.Errorf("missing problem line")
	}
	if len(clause) > 0 {
		sat.Clauses = append(sat.Clauses, clause)
	}

	return sat, nil
}

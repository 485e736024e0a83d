package puzzles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pithecene-io/advent/solution"
)

// Day01 reads one integer per line. Part one sums them; part two sums
// their squares.
type Day01 struct{}

// Parse reads one integer per non-blank line.
func (Day01) Parse(raw string) ([]int, error) {
	var out []int
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (Day01) PartOne(in []int) (int, error) {
	total := 0
	for _, n := range in {
		total += n
	}
	return total, nil
}

func (Day01) PartTwo(in []int) (int, error) {
	total := 0
	for _, n := range in {
		total += n * n
	}
	return total, nil
}

// Expected returns the answers for testdata/test_01.txt.
func (Day01) Expected() (solution.Answer[int], solution.Answer[int]) {
	return solution.Some(6), solution.Some(14)
}

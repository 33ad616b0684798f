// Package tour prints a walk through everyday Go: values, control flow,
// slices and maps, composition, and error handling.
package tour

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownSection = errors.New("unknown tour section")

const rule = 60

type Section struct {
	Name  string
	Title string
	Run   func(w io.Writer)
}

var sections = []Section{
	{Name: "variables", Title: "SECTION 1: VARIABLE DECLARATIONS & DATA TYPES", Run: Variables},
	{Name: "conditions", Title: "SECTION 2: CONDITIONS & CONTROL FLOW", Run: Conditions},
	{Name: "looping", Title: "SECTION 3: LOOPING & ITERATION", Run: Looping},
	{Name: "aggregations", Title: "SECTION 4: AGGREGATIONS & TRANSFORMATIONS", Run: Aggregations},
	{Name: "oop", Title: "SECTION 5: TYPES, INTERFACES & EMBEDDING", Run: Types},
	{Name: "features", Title: "SECTION 6: LANGUAGE FEATURES", Run: Features},
}

// Sections lists the section names in the order Run prints them.
func Sections() []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}

func lookup(name string) (Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

func banner(w io.Writer, title string) {
	line := strings.Repeat("=", rule)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", line, title, line)
}

// Run prints the opening banner, the chosen sections (all of them when names
// is empty) and the closing banner. Unknown names are rejected before
// anything is printed.
func Run(w io.Writer, names ...string) error {
	selected := sections
	if len(names) > 0 {
		selected = make([]Section, 0, len(names))
		for _, name := range names {
			s, ok := lookup(name)
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownSection, name)
			}
			selected = append(selected, s)
		}
	}

	banner(w, "GO PLAYGROUND: VARIABLES, CONDITIONS, LOOPS & TYPES")
	for _, s := range selected {
		banner(w, s.Title)
		fmt.Fprintln(w)
		s.Run(w)
	}
	banner(w, "END OF GO PLAYGROUND")
	fmt.Fprintln(w)
	return nil
}

package tour

import (
	"fmt"
	"io"
)

func lifeStage(age int) string {
	if age < 13 {
		return "Child"
	} else if age < 18 {
		return "Teenager"
	} else if age < 65 {
		return "Adult"
	}
	return "Senior"
}

func gradeDescription(grade rune) string {
	switch grade {
	case 'A':
		return "Excellent"
	case 'B':
		return "Good"
	case 'C':
		return "Average"
	default:
		return "Unknown"
	}
}

func Conditions(w io.Writer) {
	age := 25
	fmt.Fprintln(w, lifeStage(age))

	x, y := 10, 20
	fmt.Fprintln(w, "\nComparison operators:")
	fmt.Fprintf(w, "  %d == %d: %t\n", x, y, x == y)
	fmt.Fprintf(w, "  %d != %d: %t\n", x, y, x != y)
	fmt.Fprintf(w, "  %d < %d: %t\n", x, y, x < y)
	fmt.Fprintf(w, "  %d > %d: %t\n", x, y, x > y)
	fmt.Fprintf(w, "  %d <= %d: %t\n", x, y, x <= y)
	fmt.Fprintf(w, "  %d >= %d: %t\n", x, y, x >= y)

	fmt.Fprintln(w, "\nLogical operators:")
	fmt.Fprintf(w, "  age > 18 && age < 65: %t\n", age > 18 && age < 65)
	fmt.Fprintf(w, "  age < 13 || age > 65: %t\n", age < 13 || age > 65)
	fmt.Fprintf(w, "  !(age == 25): %t\n", !(age == 25))

	status := "Minor"
	if age >= 18 {
		status = "Adult"
	}
	fmt.Fprintln(w, "\nConditional assignment:")
	fmt.Fprintf(w, "  status: %s\n", status)

	grade := 'B'
	fmt.Fprintln(w, "\nSwitch statement:")
	switch grade {
	case 'A':
		fmt.Fprintln(w, "  Grade A: Excellent")
	case 'B':
		fmt.Fprintln(w, "  Grade B: Good")
	case 'C':
		fmt.Fprintln(w, "  Grade C: Average")
	default:
		fmt.Fprintln(w, "  Grade: Unknown")
	}

	fmt.Fprintln(w, "\nSwitch without a tag:")
	switch {
	case age < 18:
		fmt.Fprintln(w, "  too young to vote")
	case age >= 18:
		fmt.Fprintln(w, "  may vote")
	}

	fmt.Fprintln(w, "\nSwitch as a function result:")
	fmt.Fprintf(w, "  %s\n", gradeDescription(grade))
}

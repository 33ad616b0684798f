package tour

import (
	"fmt"
	"io"
)

func Looping(w io.Writer) {
	fmt.Fprint(w, "For loop (0-4): ")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(w, "%d ", i)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "For loop (0-10, step 2): ")
	for i := 0; i <= 10; i += 2 {
		fmt.Fprintf(w, "%d ", i)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "Range over int: ")
	for i := range 3 {
		fmt.Fprintf(w, "%d ", i)
	}
	fmt.Fprintln(w)

	numbers := []int{1, 2, 3, 4, 5}
	fmt.Fprint(w, "Range over slice: ")
	for _, n := range numbers {
		fmt.Fprintf(w, "%d ", n)
	}
	fmt.Fprintln(w)

	fruits := []string{"apple", "banana", "cherry"}
	fmt.Fprintln(w, "\nRange with index:")
	for i, f := range fruits {
		fmt.Fprintf(w, "  [%d] %s\n", i, f)
	}

	fmt.Fprint(w, "\nWhile-style loop (countdown): ")
	count := 3
	for count > 0 {
		fmt.Fprintf(w, "%d ", count)
		count--
	}
	fmt.Fprintln(w, "Blast off!")

	// The body runs once before the condition is checked.
	fmt.Fprint(w, "Do-while style loop: ")
	x := 1
	for {
		fmt.Fprintf(w, "%d ", x)
		x++
		if x > 3 {
			break
		}
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "Break (stop at 5): ")
	for i := 0; i < 10; i++ {
		if i == 5 {
			break
		}
		fmt.Fprintf(w, "%d ", i)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "Continue (skip 3): ")
	for i := 0; i < 6; i++ {
		if i == 3 {
			continue
		}
		fmt.Fprintf(w, "%d ", i)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "\nNested loops (3x3 multiplication table):")
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			fmt.Fprintf(w, "%dx%d=%02d  ", i, j, i*j)
		}
		fmt.Fprintln(w)
	}
}

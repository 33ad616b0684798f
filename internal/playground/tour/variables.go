package tour

import (
	"fmt"
	"io"
	"maps"
	"slices"
)

func Variables(w io.Writer) {
	var smallByte uint8 = 255
	var smallInt int16 = 32000
	age := 25
	var largeNumber int64 = 1000000
	var unsignedInt uint = 50

	fmt.Fprintln(w, "Integer types:")
	fmt.Fprintf(w, "  smallByte (uint8): %d\n", smallByte)
	fmt.Fprintf(w, "  smallInt (int16): %d\n", smallInt)
	fmt.Fprintf(w, "  age (int): %d\n", age)
	fmt.Fprintf(w, "  largeNumber (int64): %d\n", largeNumber)
	fmt.Fprintf(w, "  unsignedInt (uint): %d\n", unsignedInt)

	var height float32 = 5.9
	pi := 3.14159265359
	// Money is kept in cents.
	var priceCents int64 = 1999

	fmt.Fprintln(w, "\nFloating point types:")
	fmt.Fprintf(w, "  height (float32): %v\n", height)
	fmt.Fprintf(w, "  pi (float64): %v\n", pi)
	fmt.Fprintf(w, "  price (int64 cents): $%d.%02d\n", priceCents/100, priceCents%100)

	letter := 'A'
	isDeveloper := true
	isStudent := false

	fmt.Fprintln(w, "\nRune and bool:")
	fmt.Fprintf(w, "  letter (rune): %c\n", letter)
	fmt.Fprintf(w, "  isDeveloper (bool): %t\n", isDeveloper)
	fmt.Fprintf(w, "  isStudent (bool): %t\n", isStudent)

	name := "John Doe"
	message := "Hello World"

	fmt.Fprintln(w, "\nString type:")
	fmt.Fprintf(w, "  name (string): %s\n", name)
	fmt.Fprintf(w, "  message (string): %s\n", message)

	numbers := [5]int{1, 2, 3, 4, 5}
	fmt.Fprintln(w, "\nArray (fixed size):")
	fmt.Fprintf(w, "  [5]int: %v\n", numbers)

	dynamic := []int{1, 2, 3, 4, 5}
	dynamic = append(dynamic, 6, 7)
	fmt.Fprintln(w, "\nSlice (dynamic):")
	fmt.Fprintf(w, "  []int: %v (len %d)\n", dynamic, len(dynamic))

	ages := map[string]int{"Alice": 30, "Bob": 25, "Charlie": 35}
	fmt.Fprintln(w, "\nMap (key-value, sorted keys):")
	for _, k := range slices.Sorted(maps.Keys(ages)) {
		fmt.Fprintf(w, "  %s: %d\n", k, ages[k])
	}

	var nullable *int
	fmt.Fprintln(w, "\nPointer as optional value:")
	fmt.Fprintf(w, "  before: %v\n", nullable == nil)
	v := 42
	nullable = &v
	fmt.Fprintf(w, "  after: %d\n", *nullable)

	fmt.Fprintln(w, "\nType reporting:")
	fmt.Fprintf(w, "  age: %T\n", age)
	fmt.Fprintf(w, "  height: %T\n", height)
	fmt.Fprintf(w, "  name: %T\n", name)
}

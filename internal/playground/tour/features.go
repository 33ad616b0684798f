package tour

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrDivisionByZero = errors.New("division by zero")

// Reversible is a named string type so it can carry methods.
type Reversible string

func (s Reversible) Reverse() string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// DivideText parses the divisor and divides a by it.
func DivideText(a int, divisor string) (int, error) {
	b, err := strconv.Atoi(divisor)
	if err != nil {
		return 0, err
	}
	return Divide(a, b)
}

func nameAndAge() (string, int) {
	return "Bob", 25
}

func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func describe(v interface{}) string {
	switch x := v.(type) {
	case int:
		return fmt.Sprintf("Integer: %d", x)
	case string:
		return fmt.Sprintf("String: %s", x)
	default:
		return "Unknown type"
	}
}

// explainDivision reports how dividing 10 by divisor went. The deferred
// line prints whether or not the division succeeded.
func explainDivision(w io.Writer, divisor string) {
	defer fmt.Fprintln(w, "   Finally block executed")

	result, err := DivideText(10, divisor)
	var numErr *strconv.NumError
	switch {
	case errors.Is(err, ErrDivisionByZero):
		fmt.Fprintln(w, "   Caught: Division by zero")
	case errors.As(err, &numErr):
		fmt.Fprintf(w, "   Caught: Invalid format %q\n", numErr.Num)
	case err != nil:
		fmt.Fprintf(w, "   Caught: %v\n", err)
	default:
		fmt.Fprintf(w, "   10 / %s = %d\n", divisor, result)
	}
}

func Features(w io.Writer) {
	fmt.Fprintln(w, "1. Function literals:")
	multiply := func(x, y int) int { return x * y }
	fmt.Fprintf(w, "   multiply(5, 3) = %d\n", multiply(5, 3))

	counter := func() func() int {
		n := 0
		return func() int {
			n++
			return n
		}
	}()
	counter()
	fmt.Fprintf(w, "   closure counter after two calls = %d\n", counter())

	fmt.Fprintln(w, "\n2. Generic pipeline:")
	nums := make([]int, 10)
	for i := range nums {
		nums[i] = i + 1
	}
	evenSquares := Map(Filter(nums, isEven), func(x int) int { return x * x })
	fmt.Fprintf(w, "   Even squares: %v\n", evenSquares)

	fmt.Fprintln(w, "\n3. Formatted strings:")
	name, age, height := "Alice", 30, 5.9
	fmt.Fprintf(w, "   %s is %d years old, %.1fm tall\n", name, age, height)

	fmt.Fprintln(w, "\n4. Multiple return values:")
	n, a := nameAndAge()
	fmt.Fprintf(w, "   Name: %s, Age: %d\n", n, a)

	fmt.Fprintln(w, "\n5. Default value fallback:")
	var missing *string
	fmt.Fprintf(w, "   Result: %s\n", orDefault(missing, "default value"))

	fmt.Fprintln(w, "\n6. Type switch:")
	fmt.Fprintf(w, "   %s\n", describe(42))

	fmt.Fprintln(w, "\n7. Anonymous struct:")
	person := struct {
		Name string
		Age  int
		City string
	}{"Charlie", 35, "NYC"}
	fmt.Fprintf(w, "   Name: %s, Age: %d, City: %s\n", person.Name, person.Age, person.City)

	fmt.Fprintln(w, "\n8. Methods on named types:")
	text := Reversible("hello")
	fmt.Fprintf(w, "   '%s' reversed: '%s'\n", text, text.Reverse())

	fmt.Fprintln(w, "\n9. Error handling:")
	explainDivision(w, "0")
	explainDivision(w, "abc")

	fmt.Fprintln(w, "\n10. Function values:")
	greet := func(msg string) { fmt.Fprintf(w, "   %s\n", msg) }
	greet("Hello from a func value!")
	square := func(x int) int { return x * x }
	fmt.Fprintf(w, "   square(7) = %d\n", square(7))
}

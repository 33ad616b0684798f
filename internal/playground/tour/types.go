package tour

import (
	"errors"
	"fmt"
	"io"
)

const Kingdom = "Animalia"

type Describer interface {
	Describe() string
}

type SoundMaker interface {
	MakeSound() string
}

type Animal struct {
	Name    string
	Species string
	age     int
}

func NewAnimal(name, species string) Animal {
	return Animal{Name: name, Species: species}
}

func (a *Animal) Describe() string {
	return fmt.Sprintf("%s is a %s (%s)", a.Name, a.Species, Kingdom)
}

func (a *Animal) Age() int { return a.age }

func (a *Animal) AgeOneYear() int {
	a.age++
	return a.age
}

// Dog embeds Animal and shadows Describe.
type Dog struct {
	Animal
	Breed string
}

func NewDog(name, breed string) *Dog {
	return &Dog{Animal: NewAnimal(name, "Dog"), Breed: breed}
}

func (d *Dog) Describe() string {
	return fmt.Sprintf("%s (Breed: %s)", d.Animal.Describe(), d.Breed)
}

type Bird struct {
	Animal
}

func NewBird(name string) *Bird {
	return &Bird{Animal: NewAnimal(name, "Bird")}
}

func (b *Bird) MakeSound() string { return "Generic sound" }

type Duck struct{ Bird }

func NewDuck(name string) *Duck { return &Duck{Bird: *NewBird(name)} }

func (d *Duck) MakeSound() string { return "Quack!" }

type Owl struct{ Bird }

func NewOwl(name string) *Owl { return &Owl{Bird: *NewBird(name)} }

func (o *Owl) MakeSound() string { return "Hoo hoo!" }

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// BankAccount keeps its balance unexported; callers go through the methods.
type BankAccount struct {
	owner   string
	balance float64
}

func NewBankAccount(owner string, initial float64) *BankAccount {
	return &BankAccount{owner: owner, balance: initial}
}

func (b *BankAccount) Owner() string { return b.owner }

func (b *BankAccount) Balance() float64 { return b.balance }

func (b *BankAccount) Deposit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b.balance += amount
	return nil
}

func (b *BankAccount) Withdraw(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > b.balance {
		return ErrInsufficientFunds
	}
	b.balance -= amount
	return nil
}

func Types(w io.Writer) {
	fmt.Fprintln(w, "Creating animal values:")
	dog := NewDog("Buddy", "Golden Retriever")
	fmt.Fprintf(w, "  %s\n", dog.Describe())
	fmt.Fprintf(w, "  %s is now %d years old\n", dog.Name, dog.AgeOneYear())

	fmt.Fprintln(w, "\nInterfaces:")
	birds := []SoundMaker{NewDuck("Donald"), NewOwl("Oliver"), NewBird("Generic")}
	for _, b := range birds {
		fmt.Fprintf(w, "  %s\n", b.MakeSound())
	}
	describers := []Describer{dog, NewDuck("Daisy")}
	for _, d := range describers {
		fmt.Fprintf(w, "  %s\n", d.Describe())
	}

	fmt.Fprintln(w, "\nEncapsulation:")
	account := NewBankAccount("John", 1000)
	if err := account.Deposit(500); err == nil {
		fmt.Fprintf(w, "  Deposited $500.00. Balance: $%.2f\n", account.Balance())
	}
	if err := account.Withdraw(200); err == nil {
		fmt.Fprintf(w, "  Withdrew $200.00. Balance: $%.2f\n", account.Balance())
	}
	if err := account.Withdraw(5000); err != nil {
		fmt.Fprintf(w, "  Withdraw $5000.00: %v\n", err)
	}
	fmt.Fprintf(w, "  %s's balance: $%.2f\n", account.Owner(), account.Balance())
}

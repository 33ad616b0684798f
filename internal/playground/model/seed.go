package model

import "time"

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// SeedFirstUser is inserted on its own by the create section.
func SeedFirstUser() User {
	return User{
		Name:     "Alice",
		Age:      28,
		Email:    "alice@example.com",
		Status:   StatusActive,
		Skills:   []string{"JavaScript", "MongoDB"},
		JoinDate: date(2020, time.January, 15),
		Profile:  Profile{Country: "USA", Department: "Engineering"},
	}
}

// SeedBatchUsers is inserted in a single insertMany by the create section.
func SeedBatchUsers() []User {
	return []User{
		{
			Name:     "Bob",
			Age:      35,
			Email:    "bob@example.com",
			Status:   StatusActive,
			Skills:   []string{"Python", "SQL"},
			JoinDate: date(2019, time.May, 20),
			Profile:  Profile{Country: "Canada", Department: "DevOps"},
		},
		{
			Name:     "Charlie",
			Age:      22,
			Email:    "charlie@example.com",
			Status:   StatusInactive,
			Skills:   []string{"Java"},
			JoinDate: date(2021, time.March, 10),
			Profile:  Profile{Country: "UK", Department: "QA"},
		},
		{
			Name:     "Diana",
			Age:      30,
			Email:    "diana@example.com",
			Status:   StatusActive,
			Skills:   []string{"Go", "Rust"},
			JoinDate: date(2018, time.November, 1),
			Profile:  Profile{Country: "Germany", Department: "Engineering"},
		},
		{
			Name:     "Eve",
			Age:      27,
			Email:    "eve@example.com",
			Status:   StatusActive,
			Skills:   []string{"React", "Node.js"},
			JoinDate: date(2020, time.July, 15),
			Profile:  Profile{Country: "USA", Department: "Frontend"},
		},
	}
}

// ReplacementBob is the full document that replaces Bob in the update section.
func ReplacementBob() User {
	return User{
		Name:     "Bob",
		Age:      36,
		Email:    "bob.new@example.com",
		Status:   StatusVIP,
		Skills:   []string{"Python", "SQL", "PostgreSQL"},
		JoinDate: date(2019, time.May, 20),
		Profile:  Profile{Country: "Canada", Department: "DevOps"},
	}
}

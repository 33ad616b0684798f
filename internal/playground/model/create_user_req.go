package model

import (
	"strings"
	"time"
)

type CreateUserReq struct {
	Name       string     `json:"name" validate:"required,max=100"`
	Age        int        `json:"age" validate:"gte=0,lte=150"`
	Email      string     `json:"email" validate:"required,email"`
	Status     string     `json:"status" validate:"omitempty,user_status"`
	Skills     []string   `json:"skills" validate:"max=20,dive,required,max=50"`
	JoinDate   *time.Time `json:"joinDate"`
	Country    string     `json:"country" validate:"max=100"`
	Department string     `json:"department" validate:"max=100"`
}

func (r *CreateUserReq) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Country = strings.TrimSpace(r.Country)
	r.Department = strings.TrimSpace(r.Department)
	for i := range r.Skills {
		r.Skills[i] = strings.TrimSpace(r.Skills[i])
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// ToUser builds the document to insert. Status defaults to active and the
// join date to now.
func (r *CreateUserReq) ToUser(now time.Time) User {
	status := r.Status
	if status == "" {
		status = StatusActive
	}
	joined := r.JoinDate
	if joined == nil {
		t := now.UTC()
		joined = &t
	}
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}
	return User{
		Name:     r.Name,
		Age:      r.Age,
		Email:    r.Email,
		Status:   status,
		Skills:   skills,
		JoinDate: joined,
		Profile:  Profile{Country: r.Country, Department: r.Department},
	}
}

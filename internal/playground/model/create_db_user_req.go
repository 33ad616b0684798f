package model

import "strings"

// CreateDBUserReq creates a database user; the password must pass the
// strong_password rule.
type CreateDBUserReq struct {
	User     string    `json:"user" validate:"required,min=3,max=64,alphanum"`
	Password string    `json:"pwd" validate:"required,max=128,strong_password"`
	Roles    []RoleRef `json:"roles" validate:"required,min=1,dive"`
}

func (r *CreateDBUserReq) Validate() error {
	r.User = strings.TrimSpace(r.User)
	for i := range r.Roles {
		r.Roles[i].Role = strings.TrimSpace(r.Roles[i].Role)
		r.Roles[i].DB = strings.TrimSpace(r.Roles[i].DB)
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

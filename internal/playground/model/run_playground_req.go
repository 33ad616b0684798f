package model

import "strings"

type RunPlaygroundReq struct {
	Sections []string `json:"sections" validate:"max=32,dive,required,max=32"`
}

func (r *RunPlaygroundReq) Validate() error {
	for i := range r.Sections {
		r.Sections[i] = strings.ToLower(strings.TrimSpace(r.Sections[i]))
	}
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

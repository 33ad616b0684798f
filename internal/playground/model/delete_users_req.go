package model

import "strings"

// DeleteUsersReq requires a status so a bare DELETE never empties the collection.
type DeleteUsersReq struct {
	Status string `query:"status" validate:"required,user_status"`
}

func (r *DeleteUsersReq) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

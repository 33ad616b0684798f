package model

import "strings"

// UpdateUserReq combines the single-document update operators the
// playground demonstrates: $set, $push with $each, and $inc.
type UpdateUserReq struct {
	Age       *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Status    string   `json:"status" validate:"omitempty,user_status"`
	Email     string   `json:"email" validate:"omitempty,email"`
	AddSkills []string `json:"add_skills" validate:"max=20,dive,required,max=50"`
	IncAge    int      `json:"inc_age" validate:"gte=-150,lte=150"`
}

func (r *UpdateUserReq) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	for i := range r.AddSkills {
		r.AddSkills[i] = strings.TrimSpace(r.AddSkills[i])
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Age == nil && r.Status == "" && r.Email == "" && len(r.AddSkills) == 0 && r.IncAge == 0 {
		return &ErrorDetail{Code: "bad_request", Message: "at least one update field is required"}
	}
	if r.Age != nil && r.IncAge != 0 {
		return &ErrorDetail{Code: "bad_request", Message: "age and inc_age cannot be combined"}
	}
	return nil
}

// SetFields returns the $set portion of the update.
func (r *UpdateUserReq) SetFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Age != nil {
		fields[FieldAge] = *r.Age
	}
	if r.Status != "" {
		fields[FieldStatus] = r.Status
	}
	if r.Email != "" {
		fields[FieldEmail] = r.Email
	}
	return fields
}

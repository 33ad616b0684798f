package model

import "strings"

var sortableFields = map[string]bool{
	FieldName:       true,
	FieldAge:        true,
	FieldEmail:      true,
	FieldStatus:     true,
	FieldJoinDate:   true,
	FieldDateJoined: true,
}

type QueryUsersReq struct {
	Status      string `query:"status" validate:"omitempty,user_status"`
	MinAge      int    `query:"min_age" validate:"gte=0,lte=150"`
	EmailPrefix string `query:"email_prefix" validate:"omitempty,max=100"`
	Department  string `query:"department" validate:"omitempty,max=100"`
	Skill       string `query:"skill" validate:"omitempty,max=50"`
	Sort        string `query:"sort" validate:"omitempty,max=50"`
	Order       string `query:"order" validate:"omitempty,oneof=asc desc"`
	Skip        int64  `query:"skip" validate:"gte=0"`
	Limit       int64  `query:"limit" validate:"gte=0,lte=1000"`
	Fields      string `query:"fields" validate:"omitempty,max=200"`
}

func (r *QueryUsersReq) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	r.EmailPrefix = strings.TrimSpace(r.EmailPrefix)
	r.Department = strings.TrimSpace(r.Department)
	r.Skill = strings.TrimSpace(r.Skill)
	r.Sort = strings.TrimSpace(r.Sort)
	r.Order = strings.ToLower(strings.TrimSpace(r.Order))

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Sort != "" && !sortableFields[r.Sort] {
		return &ErrorDetail{Code: "bad_request", Message: "unsupported sort field: " + r.Sort}
	}
	return nil
}

func (r *QueryUsersReq) ToQuery() UserQuery {
	q := UserQuery{
		Status:      r.Status,
		EmailPrefix: r.EmailPrefix,
		Department:  r.Department,
		Skill:       r.Skill,
		SortField:   r.Sort,
		SortDir:     Ascending,
		Skip:        r.Skip,
		Limit:       r.Limit,
	}
	if r.MinAge > 0 {
		minAge := r.MinAge
		q.MinAge = &minAge
	}
	if r.Order == "desc" {
		q.SortDir = Descending
	}
	for _, f := range strings.Split(r.Fields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			q.Fields = append(q.Fields, f)
		}
	}
	return q
}

package model

type SetProfilingReq struct {
	Level  int `json:"level" validate:"gte=0,lte=2"`
	SlowMS int `json:"slowms" validate:"gte=0,lte=600000"`
}

func (r *SetProfilingReq) Validate() error {
	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

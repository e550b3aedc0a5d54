package leads

// CreateLeadRequest captures a new potential customer.
type CreateLeadRequest struct {
	FullName   string `json:"full_name" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	ProvinceID int64  `json:"province_id,omitempty" validate:"omitempty,gt=0"`
	DistrictID int64  `json:"district_id,omitempty" validate:"omitempty,gt=0"`
	WardID     int64  `json:"ward_id,omitempty" validate:"omitempty,gt=0"`
	Address    string `json:"address,omitempty" validate:"max=255"`
	Notes      string `json:"notes,omitempty" validate:"max=1000"`
}

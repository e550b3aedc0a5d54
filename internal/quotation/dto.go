package quotation

// SelectSectorRequest picks the product line at the start of the flow.
type SelectSectorRequest struct {
	SectorID int64 `json:"sector_id" validate:"required,gt=0"`
}

// BasicInfoRequest carries the system/phase selections and the optional
// suggested combo chosen on the basic-info step.
type BasicInfoRequest struct {
	SystemType    SystemType `json:"system_type" validate:"required,oneof=HYBRID BAM_TAI"`
	PhaseType     PhaseType  `json:"phase_type" validate:"required,oneof=ONE_PHASE THREE_PHASE_LOW THREE_PHASE_HIGH"`
	ComboID       *int64     `json:"combo_id,omitempty" validate:"omitempty,gt=0"`
	CustomerName  string     `json:"customer_name,omitempty" validate:"max=120"`
	CustomerPhone string     `json:"customer_phone,omitempty" validate:"omitempty,min=10,numeric"`
}

// ItemRequest mutates the selection set on the details step.
type ItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// InstallationRequest sets the installation type; frame prices are free-form
// figures entered only for KHUNG_SAT.
type InstallationRequest struct {
	InstallationType InstallationType `json:"installation_type" validate:"required,oneof=AP_MAI KHUNG_SAT"`
	FrameSellPrice   float64          `json:"frame_sell_price,omitempty" validate:"gte=0"`
	FrameLaborPrice  float64          `json:"frame_labor_price,omitempty" validate:"gte=0"`
}

// SessionResponse is the flow session as returned to the client, with the
// running total derived on the way out.
type SessionResponse struct {
	*FlowSession
	TotalPrice     float64 `json:"total_price"`
	TotalFormatted string  `json:"total_formatted"`
}

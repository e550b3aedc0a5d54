package quotation

import (
	"time"

	"github.com/sunvolt-erp/sunvolt/internal/catalog"
)

// SystemType selects the overall system architecture for a quotation.
type SystemType string

const (
	SystemHybrid SystemType = "HYBRID"
	SystemBamTai SystemType = "BAM_TAI"
)

// PhaseType selects the grid phase configuration.
type PhaseType string

const (
	PhaseOne       PhaseType = "ONE_PHASE"
	PhaseThreeLow  PhaseType = "THREE_PHASE_LOW"
	PhaseThreeHigh PhaseType = "THREE_PHASE_HIGH"
)

// InstallationType selects how panels are mounted.
type InstallationType string

const (
	InstallRooftop InstallationType = "AP_MAI"
	InstallFrame   InstallationType = "KHUNG_SAT"
)

// FlowState tracks progress through the quotation builder. Transitions are
// forward-only and driven by explicit requests.
type FlowState string

const (
	StateLineSelection FlowState = "LINE_SELECTION"
	StateBasicInfo     FlowState = "BASIC_INFO"
	StateDetails       FlowState = "DETAILS"
	StateSuccess       FlowState = "SUCCESS"
)

// next returns the state that follows s, or s itself at the end of the flow.
func (s FlowState) next() FlowState {
	switch s {
	case StateLineSelection:
		return StateBasicInfo
	case StateBasicInfo:
		return StateDetails
	case StateDetails:
		return StateSuccess
	default:
		return s
	}
}

// FilterState carries the selections threaded through the flow. Frame prices
// only apply when the installation type is KHUNG_SAT.
type FilterState struct {
	SystemType       SystemType       `json:"system_type,omitempty"`
	PhaseType        PhaseType        `json:"phase_type,omitempty"`
	InstallationType InstallationType `json:"installation_type,omitempty"`
	FrameSellPrice   float64          `json:"frame_sell_price,omitempty"`
	FrameLaborPrice  float64          `json:"frame_labor_price,omitempty"`
}

// LineItem is one selected product with its quantity. Quantity never drops
// below one; removal is a distinct operation.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// FlowSession is the server-owned state of one in-progress quotation. It is
// created at flow entry, stored in Redis under its ID and discarded by TTL
// when the agent abandons the flow.
type FlowSession struct {
	ID           string      `json:"id"`
	AgentID      int64       `json:"agent_id"`
	State        FlowState   `json:"state"`
	SectorID     int64       `json:"sector_id,omitempty"`
	ComboID      *int64      `json:"combo_id,omitempty"`
	Filters      FilterState `json:"filters"`
	Items        LineItems   `json:"items"`
	CustomerName string      `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Quotation is the persisted result of a completed flow.
type Quotation struct {
	ID               int64            `json:"id"`
	DocNumber        string           `json:"doc_number"`
	AgentID          int64            `json:"agent_id"`
	CustomerName     string           `json:"customer_name,omitempty"`
	CustomerPhone    string           `json:"customer_phone,omitempty"`
	SectorID         int64            `json:"sector_id"`
	SystemType       SystemType       `json:"system_type"`
	PhaseType        PhaseType        `json:"phase_type"`
	InstallationType InstallationType `json:"installation_type"`
	FrameSellPrice   float64          `json:"frame_sell_price,omitempty"`
	FrameLaborPrice  float64          `json:"frame_labor_price,omitempty"`
	TotalAmount      float64          `json:"total_amount"`
	CreatedAt        time.Time        `json:"created_at"`
	Lines            []QuotationLine  `json:"lines,omitempty"`
}

// QuotationLine is one persisted product line.
type QuotationLine struct {
	ID          int64            `json:"id"`
	QuotationID int64            `json:"quotation_id"`
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product_name"`
	Category    catalog.Category `json:"category"`
	UnitPrice   float64          `json:"unit_price"`
	Quantity    int              `json:"quantity"`
	LineTotal   float64          `json:"line_total"`
	LineOrder   int              `json:"line_order"`
}

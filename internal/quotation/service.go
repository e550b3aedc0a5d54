package quotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sunvolt-erp/sunvolt/internal/catalog"
)

// timeNow is swapped in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

var (
	// ErrInvalidState rejects operations that do not fit the session's
	// current flow state.
	ErrInvalidState = errors.New("invalid flow state")
	// ErrNotOwner rejects access to another agent's session.
	ErrNotOwner = errors.New("session belongs to another agent")
)

// Catalog is the slice of the catalog service the flow depends on.
type Catalog interface {
	Product(ctx context.Context, id int64) (*catalog.Product, error)
	Combos(ctx context.Context, sectorID int64, systemType, phaseType string) ([]catalog.Combo, error)
}

// Service drives the quotation flow: LINE_SELECTION → BASIC_INFO → DETAILS →
// SUCCESS. State lives in the Redis session store until completion persists
// the quotation.
type Service struct {
	store   *SessionStore
	catalog Catalog
	repo    Repository
	logger  *slog.Logger
}

func NewService(store *SessionStore, cat Catalog, repo Repository, logger *slog.Logger) *Service {
	return &Service{store: store, catalog: cat, repo: repo, logger: logger}
}

// Start opens a new flow session for the agent.
func (s *Service) Start(ctx context.Context, agentID int64) (*FlowSession, error) {
	return s.store.Create(ctx, agentID)
}

// Get loads a session, enforcing ownership.
func (s *Service) Get(ctx context.Context, agentID int64, sessionID string) (*FlowSession, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.AgentID != agentID {
		return nil, ErrNotOwner
	}
	return sess, nil
}

// SelectSector records the product line and advances to BASIC_INFO.
func (s *Service) SelectSector(ctx context.Context, agentID int64, sessionID string, req SelectSectorRequest) (*FlowSession, error) {
	sess, err := s.Get(ctx, agentID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != StateLineSelection {
		return nil, fmt.Errorf("%w: sector selection requires %s", ErrInvalidState, StateLineSelection)
	}

	sess.SectorID = req.SectorID
	sess.State = sess.State.next()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetBasicInfo records system/phase selections and optionally seeds the
// selection set from a suggested combo, then advances to DETAILS. Re-editing
// from DETAILS is allowed and keeps the line items already assembled.
func (s *Service) SetBasicInfo(ctx context.Context, agentID int64, sessionID string, req BasicInfoRequest) (*FlowSession, error) {
	sess, err := s.Get(ctx, agentID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != StateBasicInfo && sess.State != StateDetails {
		return nil, fmt.Errorf("%w: basic info requires %s", ErrInvalidState, StateBasicInfo)
	}

	sess.Filters.SystemType = req.SystemType
	sess.Filters.PhaseType = req.PhaseType
	sess.CustomerName = req.CustomerName
	sess.CustomerPhone = req.CustomerPhone

	if req.ComboID != nil && (sess.ComboID == nil || *sess.ComboID != *req.ComboID) {
		if err := s.seedFromCombo(ctx, sess, *req.ComboID); err != nil {
			return nil, err
		}
		sess.ComboID = req.ComboID
	}

	if sess.State == StateBasicInfo {
		sess.State = sess.State.next()
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// AddItem selects a product on the details step. Re-adding an already
// selected product increments its quantity.
func (s *Service) AddItem(ctx context.Context, agentID int64, sessionID string, productID int64) (*FlowSession, error) {
	return s.mutateItems(ctx, agentID, sessionID, func(sess *FlowSession) error {
		product, err := s.catalog.Product(ctx, productID)
		if err != nil {
			return fmt.Errorf("resolve product %d: %w", productID, err)
		}
		sess.Items.Add(*product)
		return nil
	})
}

// IncrementItem bumps a selected product's quantity.
func (s *Service) IncrementItem(ctx context.Context, agentID int64, sessionID string, productID int64) (*FlowSession, error) {
	return s.mutateItems(ctx, agentID, sessionID, func(sess *FlowSession) error {
		sess.Items.Increment(productID)
		return nil
	})
}

// DecrementItem lowers a selected product's quantity, never below one.
func (s *Service) DecrementItem(ctx context.Context, agentID int64, sessionID string, productID int64) (*FlowSession, error) {
	return s.mutateItems(ctx, agentID, sessionID, func(sess *FlowSession) error {
		sess.Items.Decrement(productID)
		return nil
	})
}

// RemoveItem drops a product from the selection entirely.
func (s *Service) RemoveItem(ctx context.Context, agentID int64, sessionID string, productID int64) (*FlowSession, error) {
	return s.mutateItems(ctx, agentID, sessionID, func(sess *FlowSession) error {
		sess.Items.Remove(productID)
		return nil
	})
}

// SetInstallation records the installation type. Frame prices only stick for
// KHUNG_SAT; rooftop installs clear them.
func (s *Service) SetInstallation(ctx context.Context, agentID int64, sessionID string, req InstallationRequest) (*FlowSession, error) {
	return s.mutateItems(ctx, agentID, sessionID, func(sess *FlowSession) error {
		sess.Filters.InstallationType = req.InstallationType
		if req.InstallationType == InstallFrame {
			sess.Filters.FrameSellPrice = req.FrameSellPrice
			sess.Filters.FrameLaborPrice = req.FrameLaborPrice
		} else {
			sess.Filters.FrameSellPrice = 0
			sess.Filters.FrameLaborPrice = 0
		}
		return nil
	})
}

// Complete moves the session to SUCCESS and persists the quotation. An empty
// selection set is allowed; the summary renders the placeholder total. The
// session stays readable until its TTL runs out so the success screen can
// re-fetch the summary.
func (s *Service) Complete(ctx context.Context, agentID int64, sessionID string) (*Quotation, error) {
	sess, err := s.Get(ctx, agentID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != StateDetails {
		return nil, fmt.Errorf("%w: completion requires %s", ErrInvalidState, StateDetails)
	}

	q := buildQuotation(sess)

	// The number is allocated inside the same transaction as the insert so a
	// failed insert rolls the sequence back instead of burning a number.
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		docNumber, err := repo.GenerateNumber(ctx, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("generate doc number: %w", err)
		}
		q.DocNumber = docNumber

		id, err := repo.Create(ctx, q)
		if err != nil {
			return fmt.Errorf("create quotation: %w", err)
		}
		q.ID = id
		for i := range q.Lines {
			q.Lines[i].QuotationID = id
			lineID, err := repo.InsertLine(ctx, q.Lines[i])
			if err != nil {
				return fmt.Errorf("insert line: %w", err)
			}
			q.Lines[i].ID = lineID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.State = StateSuccess
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Warn("save completed session", slog.Any("error", err))
	}
	return &q, nil
}

// History lists persisted quotations for an agent.
func (s *Service) History(ctx context.Context, agentID int64, limit, offset int) ([]Quotation, int, error) {
	return s.repo.List(ctx, agentID, limit, offset)
}

// Quotation loads one persisted quotation with its lines.
func (s *Service) Quotation(ctx context.Context, agentID int64, id int64) (*Quotation, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.AgentID != agentID {
		return nil, ErrNotOwner
	}
	return q, nil
}

func (s *Service) mutateItems(ctx context.Context, agentID int64, sessionID string, fn func(*FlowSession) error) (*FlowSession, error) {
	sess, err := s.Get(ctx, agentID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != StateDetails {
		return nil, fmt.Errorf("%w: line items require %s", ErrInvalidState, StateDetails)
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// seedFromCombo replaces the selection set with the combo's products so the
// details step starts from the suggested bundle.
func (s *Service) seedFromCombo(ctx context.Context, sess *FlowSession, comboID int64) error {
	combos, err := s.catalog.Combos(ctx, sess.SectorID, string(sess.Filters.SystemType), string(sess.Filters.PhaseType))
	if err != nil {
		return fmt.Errorf("resolve combo %d: %w", comboID, err)
	}
	var combo *catalog.Combo
	for i := range combos {
		if combos[i].ID == comboID {
			combo = &combos[i]
			break
		}
	}
	if combo == nil {
		return fmt.Errorf("resolve combo %d: %w", comboID, ErrSessionComboUnknown)
	}

	sess.Items = nil
	for _, productID := range combo.ProductIDs {
		product, err := s.catalog.Product(ctx, productID)
		if err != nil {
			s.logger.Warn("combo product missing", slog.Int64("product_id", productID), slog.Any("error", err))
			continue
		}
		sess.Items.Add(*product)
	}
	return nil
}

// ErrSessionComboUnknown flags a combo id that does not exist for the
// session's sector and filters.
var ErrSessionComboUnknown = errors.New("combo not available for selection")

func buildQuotation(sess *FlowSession) Quotation {
	q := Quotation{
		AgentID:          sess.AgentID,
		CustomerName:     sess.CustomerName,
		CustomerPhone:    sess.CustomerPhone,
		SectorID:         sess.SectorID,
		SystemType:       sess.Filters.SystemType,
		PhaseType:        sess.Filters.PhaseType,
		InstallationType: sess.Filters.InstallationType,
		FrameSellPrice:   sess.Filters.FrameSellPrice,
		FrameLaborPrice:  sess.Filters.FrameLaborPrice,
		TotalAmount:      sess.Items.TotalPrice(),
		CreatedAt:        timeNow(),
	}
	for i, item := range sess.Items {
		category := item.Product.Category
		if category == "" {
			category = catalog.CategoryAccessory
		}
		q.Lines = append(q.Lines, QuotationLine{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Category:    category,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
			LineTotal:   item.Product.Price * float64(item.Quantity),
			LineOrder:   i + 1,
		})
	}
	return q
}

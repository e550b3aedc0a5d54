package quotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunvolt-erp/sunvolt/internal/catalog"
	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

// ============================================================================
// MOCKS
// ============================================================================

type mockCatalog struct {
	products map[int64]catalog.Product
	combos   []catalog.Combo
}

func (m *mockCatalog) Product(ctx context.Context, id int64) (*catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (m *mockCatalog) Combos(ctx context.Context, sectorID int64, systemType, phaseType string) ([]catalog.Combo, error) {
	return m.combos, nil
}

type mockRepository struct {
	quotations map[int64]*Quotation
	lines      map[int64][]QuotationLine
	nextID     int64
	seq        int64
	createErr  error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quotations: make(map[int64]*Quotation),
		lines:      make(map[int64][]QuotationLine),
		nextID:     1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	// Mimic a rollback: sequence allocations made inside a failed
	// transaction are undone.
	seqBefore := m.seq
	if err := fn(ctx, m); err != nil {
		m.seq = seqBefore
		return err
	}
	return nil
}

func (m *mockRepository) Create(ctx context.Context, q Quotation) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	id := m.nextID
	m.nextID++
	stored := q
	stored.ID = id
	stored.Lines = nil
	m.quotations[id] = &stored
	return id, nil
}

func (m *mockRepository) InsertLine(ctx context.Context, line QuotationLine) (int64, error) {
	m.lines[line.QuotationID] = append(m.lines[line.QuotationID], line)
	return int64(len(m.lines[line.QuotationID])), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Quotation, error) {
	q, ok := m.quotations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	result := *q
	result.Lines = m.lines[id]
	return &result, nil
}

func (m *mockRepository) List(ctx context.Context, agentID int64, limit, offset int) ([]Quotation, int, error) {
	var result []Quotation
	for _, q := range m.quotations {
		if q.AgentID == agentID {
			result = append(result, *q)
		}
	}
	return result, len(result), nil
}

func (m *mockRepository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	m.seq++
	return fmt.Sprintf("BG-%s-%04d", date.Format("0601"), m.seq), nil
}

func newTestService(t *testing.T) (*Service, *mockRepository, *mockCatalog) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Hour)

	cat := &mockCatalog{
		products: map[int64]catalog.Product{
			1: {ID: 1, Name: "Tấm pin 550W", Price: 125_000, Category: catalog.CategoryPanel},
			2: {ID: 2, Name: "Inverter 5kW", Price: 30_000_000, Category: catalog.CategoryInverter},
			3: {ID: 3, Name: "Dây cáp DC", Price: 50_000},
		},
		combos: []catalog.Combo{
			{ID: 10, SectorID: 5, Name: "Hybrid 5kW", ProductIDs: []int64{1, 1, 2}},
		},
	}
	repo := newMockRepository()
	svc := NewService(store, cat, repo, slog.Default())
	return svc, repo, cat
}

// walkToDetails drives a fresh session to the DETAILS state.
func walkToDetails(t *testing.T, svc *Service) *FlowSession {
	t.Helper()
	ctx := context.Background()

	sess, err := svc.Start(ctx, 7)
	require.NoError(t, err)

	sess, err = svc.SelectSector(ctx, 7, sess.ID, SelectSectorRequest{SectorID: 5})
	require.NoError(t, err)

	sess, err = svc.SetBasicInfo(ctx, 7, sess.ID, BasicInfoRequest{
		SystemType: SystemHybrid,
		PhaseType:  PhaseOne,
	})
	require.NoError(t, err)
	require.Equal(t, StateDetails, sess.State)
	return sess
}

// ============================================================================
// FLOW TESTS
// ============================================================================

func TestFlowForwardOnly(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess := walkToDetails(t, svc)

	// Sector selection is only valid at the first step.
	_, err := svc.SelectSector(ctx, 7, sess.ID, SelectSectorRequest{SectorID: 9})
	assert.ErrorIs(t, err, ErrInvalidState)

	// Completing from LINE_SELECTION is impossible.
	fresh, err := svc.Start(ctx, 7)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, 7, fresh.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSessionOwnership(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx, 7)
	require.NoError(t, err)

	_, err = svc.Get(ctx, 8, sess.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestComboSeedsLineItems(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx, 7)
	require.NoError(t, err)
	sess, err = svc.SelectSector(ctx, 7, sess.ID, SelectSectorRequest{SectorID: 5})
	require.NoError(t, err)

	comboID := int64(10)
	sess, err = svc.SetBasicInfo(ctx, 7, sess.ID, BasicInfoRequest{
		SystemType: SystemHybrid,
		PhaseType:  PhaseOne,
		ComboID:    &comboID,
	})
	require.NoError(t, err)

	// Combo lists product 1 twice: one entry with quantity two.
	require.Len(t, sess.Items, 2)
	assert.Equal(t, 2, sess.Items.Get(1).Quantity)
	assert.Equal(t, 1, sess.Items.Get(2).Quantity)
	assert.Equal(t, 30_250_000.0, sess.Items.TotalPrice())
}

func TestUnknownComboRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx, 7)
	require.NoError(t, err)
	sess, err = svc.SelectSector(ctx, 7, sess.ID, SelectSectorRequest{SectorID: 5})
	require.NoError(t, err)

	comboID := int64(404)
	_, err = svc.SetBasicInfo(ctx, 7, sess.ID, BasicInfoRequest{
		SystemType: SystemHybrid,
		PhaseType:  PhaseOne,
		ComboID:    &comboID,
	})
	assert.ErrorIs(t, err, ErrSessionComboUnknown)
}

func TestItemMutationsRequireDetailsState(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx, 7)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, 7, sess.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestItemMutationSequence(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	sess := walkToDetails(t, svc)

	sess, err := svc.AddItem(ctx, 7, sess.ID, 1)
	require.NoError(t, err)
	sess, err = svc.AddItem(ctx, 7, sess.ID, 1)
	require.NoError(t, err)
	require.Len(t, sess.Items, 1)
	assert.Equal(t, 2, sess.Items[0].Quantity)

	sess, err = svc.DecrementItem(ctx, 7, sess.ID, 1)
	require.NoError(t, err)
	sess, err = svc.DecrementItem(ctx, 7, sess.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Items[0].Quantity)

	sess, err = svc.AddItem(ctx, 7, sess.ID, 2)
	require.NoError(t, err)
	sess, err = svc.RemoveItem(ctx, 7, sess.ID, 2)
	require.NoError(t, err)
	require.Len(t, sess.Items, 1)
	assert.Equal(t, 125_000.0, sess.Items.TotalPrice())
}

func TestRooftopInstallationClearsFramePrices(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	sess := walkToDetails(t, svc)

	sess, err := svc.SetInstallation(ctx, 7, sess.ID, InstallationRequest{
		InstallationType: InstallFrame,
		FrameSellPrice:   5_000_000,
		FrameLaborPrice:  2_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, 5_000_000.0, sess.Filters.FrameSellPrice)

	sess, err = svc.SetInstallation(ctx, 7, sess.ID, InstallationRequest{
		InstallationType: InstallRooftop,
	})
	require.NoError(t, err)
	assert.Zero(t, sess.Filters.FrameSellPrice)
	assert.Zero(t, sess.Filters.FrameLaborPrice)
}

func TestCompletePersistsQuotation(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	sess := walkToDetails(t, svc)

	_, err := svc.AddItem(ctx, 7, sess.ID, 1)
	require.NoError(t, err)
	_, err = svc.IncrementItem(ctx, 7, sess.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, 7, sess.ID, 3)
	require.NoError(t, err)
	_, err = svc.SetInstallation(ctx, 7, sess.ID, InstallationRequest{InstallationType: InstallRooftop})
	require.NoError(t, err)

	q, err := svc.Complete(ctx, 7, sess.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, q.DocNumber)
	assert.Equal(t, 300_000.0, q.TotalAmount)
	require.Len(t, repo.lines[q.ID], 2)

	// Product 3 has no category and persists as an accessory.
	assert.Equal(t, catalog.CategoryAccessory, repo.lines[q.ID][1].Category)

	// The session survives in SUCCESS so the summary screen can re-read it.
	after, err := svc.Get(ctx, 7, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, after.State)

	// And a completed session cannot be completed again.
	_, err = svc.Complete(ctx, 7, sess.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCompleteFailedInsertDoesNotBurnDocNumber(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()
	sess := walkToDetails(t, svc)

	repo.createErr = errors.New("deadlock detected")
	_, err := svc.Complete(ctx, 7, sess.ID)
	require.Error(t, err)

	// The rolled-back attempt must not have consumed a sequence slot.
	repo.createErr = nil
	q, err := svc.Complete(ctx, 7, sess.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(q.DocNumber, "-0001"), "got %s", q.DocNumber)
}

func TestCompleteEmptySelectionAllowed(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	sess := walkToDetails(t, svc)

	q, err := svc.Complete(ctx, 7, sess.ID)
	require.NoError(t, err)
	assert.Zero(t, q.TotalAmount)
	assert.Empty(t, q.Lines)
}

package leads

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunvolt-erp/sunvolt/internal/platform/httpx"
)

type stubRepo struct {
	leads  map[int64]Lead
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{leads: map[int64]Lead{}, nextID: 1}
}

func (r *stubRepo) Create(_ context.Context, lead Lead) (int64, error) {
	for _, existing := range r.leads {
		if existing.Phone == lead.Phone {
			return 0, httpx.ErrDuplicate
		}
	}
	lead.ID = r.nextID
	lead.CreatedAt = time.Now()
	r.leads[lead.ID] = lead
	r.nextID++
	return lead.ID, nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (*Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &lead, nil
}

func (r *stubRepo) ListByAgent(_ context.Context, agentID int64, limit, offset int) ([]Lead, int, error) {
	var all []Lead
	for _, lead := range r.leads {
		if lead.AgentID == agentID {
			all = append(all, lead)
		}
	}
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func newTestService() (*Service, *stubRepo) {
	repo := newStubRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

func TestCreateLead(t *testing.T) {
	svc, _ := newTestService()

	lead, err := svc.Create(context.Background(), 7, CreateLeadRequest{
		FullName: "Nguyễn Văn An",
		Phone:    "0912345678",
		Address:  "12 Lê Lợi, Quận 1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), lead.AgentID)
	assert.Equal(t, "0912345678", lead.Phone)
	assert.NotZero(t, lead.ID)
}

func TestCreateLeadRejectsShortPhone(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), 7, CreateLeadRequest{
		FullName: "Trần Thị Bình",
		Phone:    "091234",
	})
	assert.ErrorIs(t, err, ErrPhoneTooShort)
	assert.Empty(t, repo.leads)
}

func TestCreateLeadRejectsNonDigitPhone(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), 7, CreateLeadRequest{
		FullName: "Trần Thị Bình",
		Phone:    "09123bcd45",
	})
	assert.ErrorIs(t, err, ErrPhoneInvalid)
	assert.Empty(t, repo.leads)
}

func TestCreateLeadDuplicatePhone(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 7, CreateLeadRequest{
		FullName: "Nguyễn Văn An",
		Phone:    "0912345678",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 7, CreateLeadRequest{
		FullName: "Người Khác",
		Phone:    "0912345678",
	})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestListLeadsScopedToAgent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, CreateLeadRequest{FullName: "A", Phone: "0911111111"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, CreateLeadRequest{FullName: "B", Phone: "0922222222"})
	require.NoError(t, err)

	items, total, err := svc.List(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "0911111111", items[0].Phone)
}

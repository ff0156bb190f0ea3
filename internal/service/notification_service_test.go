package service

import (
	"context"
	"sort"
	"testing"

	"cicloharmony/internal/dto"
	"cicloharmony/internal/model"
	"cicloharmony/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubNotifRepo is an in-memory NotificationRepository.
type stubNotifRepo struct {
	rows map[uuid.UUID]*model.Notification
}

func newStubNotifRepo() *stubNotifRepo {
	return &stubNotifRepo{rows: make(map[uuid.UUID]*model.Notification)}
}

func (r *stubNotifRepo) Create(_ context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	cp := *n
	r.rows[n.ID] = &cp
	return nil
}

func (r *stubNotifRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *stubNotifRepo) sorted(published bool) []model.Notification {
	var out []model.Notification
	for _, n := range r.rows {
		if published && !n.Published {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

func (r *stubNotifRepo) ListPublished(_ context.Context) ([]model.Notification, error) {
	return r.sorted(true), nil
}

func (r *stubNotifRepo) ListAll(_ context.Context) ([]model.Notification, error) {
	return r.sorted(false), nil
}

func (r *stubNotifRepo) Update(_ context.Context, n *model.Notification) error {
	if _, ok := r.rows[n.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *n
	r.rows[n.ID] = &cp
	return nil
}

func (r *stubNotifRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubNotifRepo) Reorder(_ context.Context, ids []uuid.UUID) error {
	// All-or-nothing, like the SQL transaction.
	for _, id := range ids {
		if _, ok := r.rows[id]; !ok {
			return gorm.ErrRecordNotFound
		}
	}
	for i, id := range ids {
		r.rows[id].OrderIndex = i
	}
	return nil
}

var _ repository.NotificationRepository = (*stubNotifRepo)(nil)

func notifReq(title string, published bool) dto.NotificationRequest {
	return dto.NotificationRequest{Title: title, Description: "desc " + title, Published: published}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateAppendsAtEndOfList(t *testing.T) {
	svc := NewNotificationService(newStubNotifRepo())

	first, err := svc.Create(context.Background(), notifReq("uno", true))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), notifReq("dos", true))
	require.NoError(t, err)

	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
}

func TestListPublishedHidesDrafts(t *testing.T) {
	svc := NewNotificationService(newStubNotifRepo())

	_, err := svc.Create(context.Background(), notifReq("publica", true))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), notifReq("borrador", false))
	require.NoError(t, err)

	published, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "publica", published[0].Title)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReorderAssignsSequentialIndexes(t *testing.T) {
	repo := newStubNotifRepo()
	svc := NewNotificationService(repo)

	a, _ := svc.Create(context.Background(), notifReq("a", true))
	b, _ := svc.Create(context.Background(), notifReq("b", true))
	c, _ := svc.Create(context.Background(), notifReq("c", true))

	require.NoError(t, svc.Reorder(context.Background(), dto.ReorderRequest{
		IDs: []string{c.ID, a.ID, b.ID},
	}))

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Title)
	assert.Equal(t, "a", all[1].Title)
	assert.Equal(t, "b", all[2].Title)
}

func TestReorderRejectsMalformedID(t *testing.T) {
	svc := NewNotificationService(newStubNotifRepo())

	err := svc.Reorder(context.Background(), dto.ReorderRequest{IDs: []string{"no-es-uuid"}})
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "ids")
}

func TestUpdateAndDelete(t *testing.T) {
	svc := NewNotificationService(newStubNotifRepo())

	created, err := svc.Create(context.Background(), notifReq("antes", false))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), notifReq("despues", true))
	require.NoError(t, err)
	assert.Equal(t, "despues", updated.Title)
	assert.True(t, updated.Published)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(created.ID)))
	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

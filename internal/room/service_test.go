package room

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	rooms map[string]*Room
	seq   int
}

func newMemRepo() *memRepo {
	return &memRepo{rooms: map[string]*Room{}}
}

func (m *memRepo) Create(_ context.Context, r *Room) error {
	for _, existing := range m.rooms {
		if existing.Number == r.Number {
			return ErrNumberTaken
		}
	}
	m.seq++
	r.ID = fmt.Sprintf("room-%d", m.seq)
	r.RoomTypeName = "Deluxe"
	cp := *r
	m.rooms[r.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, _ Filter) ([]*Room, int, error) {
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, r *Room) error {
	if _, ok := m.rooms[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.rooms[r.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(m.rooms, id)
	return nil
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newMemRepo())

	r, err := svc.Create(context.Background(), CreateRequest{RoomTypeID: "rt-1", Number: " 101 ", Floor: 1})
	require.NoError(t, err)
	assert.Equal(t, "101", r.Number)
	assert.Equal(t, StatusAvailable, r.Status)
	assert.Equal(t, CleaningClean, r.CleaningStatus)
	assert.Equal(t, "Deluxe", r.RoomTypeName)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"blank number", CreateRequest{RoomTypeID: "rt-1", Number: "  "}, ErrNumberRequired},
		{"bad status", CreateRequest{RoomTypeID: "rt-1", Number: "1", Status: "broken"}, ErrInvalidStatus},
		{"bad cleaning", CreateRequest{RoomTypeID: "rt-1", Number: "1", CleaningStatus: "sparkling"}, ErrInvalidCleaningStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(newMemRepo()).Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{RoomTypeID: "rt-1", Number: "201"})
	require.NoError(t, err)

	maintenance := StatusMaintenance
	updated, err := svc.UpdateStatus(ctx, r.ID, StatusUpdate{Status: &maintenance})
	require.NoError(t, err)
	assert.Equal(t, StatusMaintenance, updated.Status)
	assert.Equal(t, CleaningClean, updated.CleaningStatus)

	dirty := CleaningDirty
	updated, err = svc.UpdateStatus(ctx, r.ID, StatusUpdate{CleaningStatus: &dirty})
	require.NoError(t, err)
	assert.Equal(t, StatusMaintenance, updated.Status)
	assert.Equal(t, CleaningDirty, updated.CleaningStatus)

	bogus := Status("gone")
	_, err = svc.UpdateStatus(ctx, r.ID, StatusUpdate{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, "missing", StatusUpdate{Status: &maintenance})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusBookable(t *testing.T) {
	assert.True(t, StatusAvailable.Bookable())
	assert.True(t, StatusCleaning.Bookable())
	assert.False(t, StatusOccupied.Bookable())
	assert.False(t, StatusMaintenance.Bookable())
	assert.False(t, StatusBlocked.Bookable())
	assert.True(t, StatusBlocked.OutOfService())
}

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewlink-service/internal/domain/entity"
)

var t0 = time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

func TestMemoryFlightStatusRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFlightStatusRepository([]*entity.FlightStatus{
		{FlightNumber: "UK812", Status: entity.FlightOnTime, Gate: "A3"},
		{FlightNumber: "DL287", Status: entity.FlightOnTime, Gate: "D14"},
	})

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "DL287", list[0].FlightNumber)
	assert.Equal(t, "UK812", list[1].FlightNumber)

	// mutating a read never reaches the registry
	list[0].Status = entity.FlightCancelled
	got, err := repo.FindByFlightNumber(ctx, "DL287")
	require.NoError(t, err)
	assert.Equal(t, entity.FlightOnTime, got.Status)

	got.Gate = "D15"
	require.NoError(t, repo.Save(ctx, got))
	got.Gate = "Z1"
	stored, err := repo.FindByFlightNumber(ctx, "DL287")
	require.NoError(t, err)
	assert.Equal(t, "D15", stored.Gate)

	_, err = repo.FindByFlightNumber(ctx, "XX1")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.ErrorIs(t, repo.Save(ctx, &entity.FlightStatus{}), entity.ErrInvalidInput)
}

func TestMemoryNotificationRepository_IDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNotificationRepository([]*entity.Notification{
		{ID: 4, Title: "seed"},
	})

	// same timestamp twice still yields increasing ids
	a := &entity.Notification{Title: "a", CreatedAt: t0}
	b := &entity.Notification{Title: "b", CreatedAt: t0}
	require.NoError(t, repo.Prepend(ctx, a))
	require.NoError(t, repo.Append(ctx, b))
	assert.Equal(t, t0.UnixMilli(), a.ID)
	assert.Greater(t, b.ID, a.ID)

	// a timestamp older than the last id is bumped forward
	c := &entity.Notification{Title: "c", CreatedAt: t0.Add(-time.Hour)}
	require.NoError(t, repo.Prepend(ctx, c))
	assert.Greater(t, c.ID, b.ID)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	titles := []string{}
	for _, n := range items {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"c", "a", "seed", "b"}, titles)
}

func TestMemoryNotificationRepository_ReadFlags(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNotificationRepository([]*entity.Notification{
		{ID: 1, Read: false},
		{ID: 2, Read: true},
		{ID: 3, Read: false},
	})

	count, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.MarkRead(ctx, 1))
	assert.ErrorIs(t, repo.MarkRead(ctx, 42), entity.ErrNotFound)

	changed, err := repo.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	count, err = repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryNotificationRepository_ConcurrentPrepend(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryNotificationRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Prepend(ctx, &entity.Notification{CreatedAt: t0})
		}()
	}
	wg.Wait()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	seen := map[int64]bool{}
	for _, n := range items {
		assert.False(t, seen[n.ID], "duplicate id %d", n.ID)
		seen[n.ID] = true
	}
	assert.Len(t, seen, 50)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository([]*entity.User{
		{ID: "u1", Name: "Capt. Arjun Singh", Role: entity.RolePilot, EmployeeID: "EMP101"},
		{ID: "u2", Name: "Priya Sharma", Role: entity.RoleCabinCrew, EmployeeID: "EMP202"},
		{ID: "u5", Name: "Second Pilot", Role: entity.RolePilot, EmployeeID: "EMP505"},
	})

	first, err := repo.FindFirstByRole(ctx, entity.RolePilot)
	require.NoError(t, err)
	assert.Equal(t, "u1", first.ID)

	_, err = repo.FindFirstByRole(ctx, entity.RoleAdmin)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	byEmp, err := repo.FindByEmployeeID(ctx, "EMP202")
	require.NoError(t, err)
	assert.Equal(t, "u2", byEmp.ID)

	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u1", EmployeeID: "EMP999"}), entity.ErrInvalidInput)
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u9", EmployeeID: "EMP101"}), entity.ErrInvalidInput)
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u9", EmployeeID: "EMP909"}))

	assert.ErrorIs(t, repo.Update(ctx, &entity.User{ID: "u404"}), entity.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), entity.ErrNotFound)

	first, err = repo.FindFirstByRole(ctx, entity.RolePilot)
	require.NoError(t, err)
	assert.Equal(t, "u5", first.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestMemoryScheduleRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryScheduleRepository([]*entity.ScheduleEvent{
		{ID: "s1", UserID: "u1", Title: "A"},
		{ID: "s2", UserID: "u2", Title: "B"},
		{ID: "s3", UserID: "u1", Title: "C"},
	})

	assert.ErrorIs(t, repo.Create(ctx, &entity.ScheduleEvent{ID: "s1"}), entity.ErrInvalidInput)
	assert.ErrorIs(t, repo.Update(ctx, &entity.ScheduleEvent{ID: "s9"}), entity.ErrNotFound)

	require.NoError(t, repo.Update(ctx, &entity.ScheduleEvent{ID: "s2", UserID: "u2", Title: "B2"}))
	got, err := repo.FindByID(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "B2", got.Title)

	removed, err := repo.DeleteByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "s2", all[0].ID)

	mine, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestMemoryExpenseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryExpenseRepository([]*entity.Expense{{ID: "e1"}})

	require.NoError(t, repo.Prepend(ctx, &entity.Expense{ID: "e2"}))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "e2", list[0].ID)

	list[0].ID = "mutated"
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e2", again[0].ID)
}

func TestMemoryWellnessRepository(t *testing.T) {
	ctx := context.Background()

	empty := NewMemoryWellnessRepository(nil)
	_, err := empty.Current(ctx)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.ErrorIs(t, empty.Replace(ctx, nil), entity.ErrInvalidInput)

	require.NoError(t, empty.Replace(ctx, &entity.SmartwatchData{HeartRate: 75}))
	got, err := empty.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, 75, got.HeartRate)
}

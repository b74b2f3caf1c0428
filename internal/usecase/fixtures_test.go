package usecase

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"crewlink-service/internal/domain/entity"
	memrepo "crewlink-service/internal/interface/repository"
	"crewlink-service/internal/testutil"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
	"crewlink-service/pkg/utils"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 8, day, hour, minute, 0, 0, time.UTC)
}

func seedUsers() []*entity.User {
	return []*entity.User{
		{ID: "u1", Name: "Capt. Arjun Singh", Role: entity.RolePilot, JobTitle: "Captain", EmployeeID: "EMP101", Status: entity.UserStatusActive, Compliance: map[string]string{"DGCA": "Valid"}},
		{ID: "u2", Name: "Priya Sharma", Role: entity.RoleCabinCrew, JobTitle: "Senior Flight Attendant", EmployeeID: "EMP202", Status: entity.UserStatusActive},
		{ID: "u3", Name: "Rohan Verma", Role: entity.RoleGroundStaff, JobTitle: "Ground Operations", EmployeeID: "EMP303", Status: entity.UserStatusActive},
		{ID: "u4", Name: "Admin User", Role: entity.RoleAdmin, JobTitle: "System Administrator", EmployeeID: "EMP001", Status: entity.UserStatusActive},
	}
}

func seedSchedule() []*entity.ScheduleEvent {
	return []*entity.ScheduleEvent{
		{ID: "s2", UserID: "u1", Type: entity.EventLayover, Title: "Layover in Mumbai", Start: at(2, 18, 0), End: at(3, 8, 0), Location: "Mumbai", ShiftType: entity.ShiftNormal},
		{ID: "s1", UserID: "u1", Type: entity.EventFlight, Title: "Flight AI101", Start: at(1, 14, 30), End: at(1, 17, 0), Location: "DEL -> BOM", ShiftType: entity.ShiftNormal, FlightNumber: "AI101"},
		{ID: "s3", UserID: "u2", Type: entity.EventFlight, Title: "Flight 6E204", Start: at(1, 6, 0), End: at(1, 8, 0), Location: "BLR -> DEL", ShiftType: entity.ShiftEarlyStart, FlightNumber: "6E204"},
		{ID: "s4", UserID: "u1", Type: entity.EventFlight, Title: "Flight AI102", Start: at(3, 10, 0), End: at(3, 12, 30), Location: "BOM -> DEL", ShiftType: entity.ShiftNormal, FlightNumber: "AI102"},
	}
}

type storeFixture struct {
	store   *SessionStore
	rng     *testutil.ScriptedRandom
	metrics *metrics.Metrics
}

func newStoreFixture(t *testing.T, expenses ...*entity.Expense) *storeFixture {
	t.Helper()
	f := &storeFixture{
		rng:     testutil.NewScriptedRandom(),
		metrics: metrics.NewMetrics("test", prometheus.NewRegistry()),
	}
	f.store = NewSessionStore(
		memrepo.NewMemoryUserRepository(seedUsers()),
		memrepo.NewMemoryScheduleRepository(seedSchedule()),
		memrepo.NewMemoryExpenseRepository(expenses),
		testutil.NewStubIDGenerator(),
		f.rng,
		utils.DefaultRates,
		50000,
		logger.NewNopLogger(),
		f.metrics,
	)
	return f
}

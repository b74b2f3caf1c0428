package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
	"crewlink-service/pkg/utils"
)

// DefaultProfileImageURL is assigned to crew members added by an admin
const DefaultProfileImageURL = "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?q=80&w=256&h=256&auto=format&fit=crop&ixlib=rb-4.0.3"

const (
	employeeIDPrefix = "EMP"
	employeeIDMin    = 100
	employeeIDSpan   = 900
)

// ErrEmployeeIDsExhausted is returned when every EMP100..EMP999 id is taken
var ErrEmployeeIDsExhausted = errors.New("employee id space exhausted")

// Session is the authenticated user plus the id issued at login
type Session struct {
	ID   string
	User *entity.User
}

// SessionStore owns the roster, schedule and expense collections and the
// active session. Mutations are serialised; rejected input leaves every
// collection unchanged.
type SessionStore struct {
	users     repository.UserRepository
	schedule  repository.ScheduleRepository
	expenses  repository.ExpenseRepository
	ids       utils.IDGenerator
	rng       utils.Random
	rates     map[entity.Currency]decimal.Decimal
	allowance int64
	logger    logger.Logger
	metrics   *metrics.Metrics

	mu           sync.RWMutex
	sessionID    string
	activeUserID string
}

// NewSessionStore creates a new session store
func NewSessionStore(
	users repository.UserRepository,
	schedule repository.ScheduleRepository,
	expenses repository.ExpenseRepository,
	ids utils.IDGenerator,
	rng utils.Random,
	rates map[entity.Currency]decimal.Decimal,
	monthlyAllowance int64,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *SessionStore {
	return &SessionStore{
		users:     users,
		schedule:  schedule,
		expenses:  expenses,
		ids:       ids,
		rng:       rng,
		rates:     rates,
		allowance: monthlyAllowance,
		logger:    logger,
		metrics:   metrics,
	}
}

// Login activates the first roster user with role. With no such user the
// session is cleared and ErrNotFound is returned.
func (s *SessionStore) Login(ctx context.Context, role entity.Role) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.FindFirstByRole(ctx, role)
	if err != nil {
		s.sessionID, s.activeUserID = "", ""
		s.logger.Warn("Login rejected", "role", role, "error", err)
		return nil, fmt.Errorf("login as %s: %w", role, err)
	}

	s.sessionID = uuid.NewString()
	s.activeUserID = user.ID
	s.logger.Info("Session started", "sessionId", s.sessionID, "userId", user.ID, "role", role)

	return &Session{ID: s.sessionID, User: user}, nil
}

// Logout clears the active session
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeUserID != "" {
		s.logger.Info("Session ended", "sessionId", s.sessionID, "userId", s.activeUserID)
	}
	s.sessionID, s.activeUserID = "", ""
}

// CurrentSession returns the active session, or false when logged out
func (s *SessionStore) CurrentSession(ctx context.Context) (*Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activeUserID == "" {
		return nil, false, nil
	}
	user, err := s.users.FindByID(ctx, s.activeUserID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load active user: %w", err)
	}
	return &Session{ID: s.sessionID, User: user}, true, nil
}

// CurrentUser returns the active user, or false when logged out
func (s *SessionStore) CurrentUser(ctx context.Context) (*entity.User, bool, error) {
	session, ok, err := s.CurrentSession(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	return session.User, true, nil
}

func sortByStart(events []*entity.ScheduleEvent) {
	slices.SortStableFunc(events, func(a, b *entity.ScheduleEvent) int {
		return a.Start.Compare(b.Start)
	})
}

// Schedule returns the active user's events by ascending start. Empty when logged out.
func (s *SessionStore) Schedule(ctx context.Context) ([]*entity.ScheduleEvent, error) {
	s.mu.RLock()
	userID := s.activeUserID
	s.mu.RUnlock()

	if userID == "" {
		return []*entity.ScheduleEvent{}, nil
	}
	events, err := s.schedule.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	sortByStart(events)
	return events, nil
}

// FullRoster returns every schedule event across the roster in insertion order
func (s *SessionStore) FullRoster(ctx context.Context) ([]*entity.ScheduleEvent, error) {
	return s.schedule.List(ctx)
}

// ScheduleForUser returns one crew member's events by ascending start
func (s *SessionStore) ScheduleForUser(ctx context.Context, userID string) ([]*entity.ScheduleEvent, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	events, err := s.schedule.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", userID, err)
	}
	sortByStart(events)
	return events, nil
}

// NextFlight returns the active user's first flight that has not ended by
// now, so a flight already airborne is still reported
func (s *SessionStore) NextFlight(ctx context.Context, now time.Time) (*entity.ScheduleEvent, bool, error) {
	return s.firstFlight(ctx, func(e *entity.ScheduleEvent) bool { return e.End.After(now) })
}

// NextDeparture returns the active user's first flight starting after now.
// It feeds the duty calculator prefill.
func (s *SessionStore) NextDeparture(ctx context.Context, now time.Time) (*entity.ScheduleEvent, bool, error) {
	return s.firstFlight(ctx, func(e *entity.ScheduleEvent) bool { return e.Start.After(now) })
}

func (s *SessionStore) firstFlight(ctx context.Context, match func(*entity.ScheduleEvent) bool) (*entity.ScheduleEvent, bool, error) {
	events, err := s.Schedule(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, e := range events {
		if e.Type == entity.EventFlight && match(e) {
			return e, true, nil
		}
	}
	return nil, false, nil
}

// AddScheduleEvent assigns a fresh id and stores the event
func (s *SessionStore) AddScheduleEvent(ctx context.Context, event *entity.ScheduleEvent) (*entity.ScheduleEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := event.Clone()
	created.ID = s.ids.New()
	if err := s.validateEvent(ctx, created); err != nil {
		return nil, err
	}
	if err := s.schedule.Create(ctx, created); err != nil {
		return nil, s.fail("add_schedule_event", err)
	}

	s.mutated("add_schedule_event")
	s.logger.Info("Schedule event added", "eventId", created.ID, "userId", created.UserID, "type", created.Type)
	return created, nil
}

// UpdateScheduleEvent replaces the stored event with the same id
func (s *SessionStore) UpdateScheduleEvent(ctx context.Context, event *entity.ScheduleEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.schedule.FindByID(ctx, event.ID); err != nil {
		return err
	}
	if err := s.validateEvent(ctx, event); err != nil {
		return err
	}
	if err := s.schedule.Update(ctx, event); err != nil {
		return s.fail("update_schedule_event", err)
	}

	s.mutated("update_schedule_event")
	s.logger.Info("Schedule event updated", "eventId", event.ID)
	return nil
}

func (s *SessionStore) validateEvent(ctx context.Context, event *entity.ScheduleEvent) error {
	if err := event.Validate(); err != nil {
		s.logger.Warn("Schedule event rejected", "eventId", event.ID, "error", err)
		return err
	}
	if _, err := s.users.FindByID(ctx, event.UserID); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("%w: unknown user %s", entity.ErrInvalidInput, event.UserID)
		}
		return err
	}
	return nil
}

// Roster returns every crew member in roster order
func (s *SessionStore) Roster(ctx context.Context) ([]*entity.User, error) {
	return s.users.List(ctx)
}

// GetCrewMember looks up a crew member by id
func (s *SessionStore) GetCrewMember(ctx context.Context, id string) (*entity.User, error) {
	return s.users.FindByID(ctx, id)
}

// SearchCrew matches term case-insensitively against name and job title.
// A blank term returns the whole roster.
func (s *SessionStore) SearchCrew(ctx context.Context, term string) ([]*entity.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return users, nil
	}

	out := users[:0]
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), term) || strings.Contains(strings.ToLower(u.JobTitle), term) {
			out = append(out, u)
		}
	}
	return out, nil
}

// AddCrewMember creates a roster user with a generated id and employee id
func (s *SessionStore) AddCrewMember(ctx context.Context, data entity.NewCrewMember) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &entity.User{
		Name:            strings.TrimSpace(data.Name),
		Role:            data.Role,
		JobTitle:        data.JobTitle,
		Base:            data.Base,
		Contact:         data.Contact,
		Email:           data.Email,
		Status:          cmp.Or(data.Status, entity.UserStatusActive),
		ProfileImageURL: DefaultProfileImageURL,
		Compliance:      map[string]string{},
		Certifications:  []entity.Certification{},
	}
	if err := user.Validate(); err != nil {
		s.logger.Warn("Crew member rejected", "name", data.Name, "error", err)
		return nil, err
	}

	employeeID, err := s.newEmployeeID(ctx)
	if err != nil {
		return nil, s.fail("add_crew_member", err)
	}
	user.ID = s.ids.New()
	user.EmployeeID = employeeID

	if err := s.users.Create(ctx, user); err != nil {
		return nil, s.fail("add_crew_member", err)
	}

	s.mutated("add_crew_member")
	if err := s.SyncRosterSize(ctx); err != nil {
		s.logger.Error("Failed to publish roster size", "error", err)
	}
	s.logger.Info("Crew member added", "userId", user.ID, "employeeId", user.EmployeeID, "role", user.Role)
	return user.Clone(), nil
}

// newEmployeeID draws EMP100..EMP999 until it finds one not on the roster.
// Caller must hold the write lock.
func (s *SessionStore) newEmployeeID(ctx context.Context) (string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(users))
	for _, u := range users {
		taken[u.EmployeeID] = true
	}

	for range employeeIDSpan {
		id := fmt.Sprintf("%s%d", employeeIDPrefix, employeeIDMin+s.rng.IntN(employeeIDSpan))
		if !taken[id] {
			return id, nil
		}
	}
	// random draws kept colliding; fall back to the lowest free id
	for n := employeeIDMin; n < employeeIDMin+employeeIDSpan; n++ {
		id := fmt.Sprintf("%s%d", employeeIDPrefix, n)
		if !taken[id] {
			return id, nil
		}
	}
	return "", ErrEmployeeIDsExhausted
}

// UpdateCrewMember replaces the roster user with the same id
func (s *SessionStore) UpdateCrewMember(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := user.Validate(); err != nil {
		s.logger.Warn("Crew member update rejected", "userId", user.ID, "error", err)
		return err
	}
	if strings.TrimSpace(user.EmployeeID) == "" {
		return fmt.Errorf("%w: employeeId is required", entity.ErrInvalidInput)
	}
	if err := s.users.Update(ctx, user); err != nil {
		if !errors.Is(err, entity.ErrNotFound) && !errors.Is(err, entity.ErrInvalidInput) {
			return s.fail("update_crew_member", err)
		}
		return err
	}

	s.mutated("update_crew_member")
	s.logger.Info("Crew member updated", "userId", user.ID)
	return nil
}

// DeleteCrewMember removes the user and every schedule event that references them.
// Deleting the active user ends the session.
func (s *SessionStore) DeleteCrewMember(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	// user goes first so a failed delete leaves the schedule intact
	if err := s.users.Delete(ctx, id); err != nil {
		return s.fail("delete_crew_member", err)
	}
	removed, err := s.schedule.DeleteByUserID(ctx, id)
	if err != nil {
		return s.fail("delete_crew_member", err)
	}

	if s.activeUserID == id {
		s.logger.Info("Active user deleted, ending session", "userId", id)
		s.sessionID, s.activeUserID = "", ""
	}

	s.mutated("delete_crew_member")
	if err := s.SyncRosterSize(ctx); err != nil {
		s.logger.Error("Failed to publish roster size", "error", err)
	}
	s.logger.Info("Crew member deleted", "userId", id, "eventsRemoved", removed)
	return nil
}

// AddExpense converts the amount to INR once, assigns an id and stores the
// expense at the head of the list
func (s *SessionStore) AddExpense(ctx context.Context, data entity.NewExpense) (*entity.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateExpense(data); err != nil {
		s.logger.Warn("Expense rejected", "currency", data.Currency, "amount", data.Amount, "error", err)
		return nil, err
	}

	expense := &entity.Expense{
		ID:          s.ids.New(),
		Amount:      data.Amount,
		Currency:    data.Currency,
		Category:    data.Category,
		Date:        data.Date,
		Description: strings.TrimSpace(data.Description),
		BaseAmount:  utils.ConvertToINR(data.Amount, data.Currency, s.rates),
	}
	if err := s.expenses.Prepend(ctx, expense); err != nil {
		return nil, s.fail("add_expense", err)
	}

	s.mutated("add_expense")
	s.logger.Info("Expense added", "expenseId", expense.ID, "currency", expense.Currency, "baseAmount", expense.BaseAmount)
	return expense, nil
}

func validateExpense(data entity.NewExpense) error {
	if !(data.Amount > 0) {
		return fmt.Errorf("%w: amount must be positive", entity.ErrInvalidInput)
	}
	if !data.Currency.Valid() {
		return fmt.Errorf("%w: unknown currency %q", entity.ErrInvalidInput, data.Currency)
	}
	if !data.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", entity.ErrInvalidInput, data.Category)
	}
	if data.Date.IsZero() {
		return fmt.Errorf("%w: date is required", entity.ErrInvalidInput)
	}
	if strings.TrimSpace(data.Description) == "" {
		return fmt.Errorf("%w: description is required", entity.ErrInvalidInput)
	}
	return nil
}

// Expenses returns every expense by descending date. Same-day expenses keep
// their most-recent-first insertion order.
func (s *SessionStore) Expenses(ctx context.Context) ([]*entity.Expense, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(expenses, func(a, b *entity.Expense) int {
		return b.Date.Compare(a.Date)
	})
	return expenses, nil
}

// ExpenseSummary totals every expense against the monthly allowance
func (s *SessionStore) ExpenseSummary(ctx context.Context) (entity.ExpenseSummary, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return entity.ExpenseSummary{}, err
	}

	var total int64
	for _, e := range expenses {
		total += e.BaseAmount
	}
	summary := entity.ExpenseSummary{
		Total:     total,
		Allowance: s.allowance,
		Remaining: s.allowance - total,
	}
	if s.allowance > 0 {
		summary.PercentUsed = min(float64(total)/float64(s.allowance)*100, 100)
	}
	return summary, nil
}

func (s *SessionStore) mutated(operation string) {
	s.metrics.StoreMutations.WithLabelValues(operation).Inc()
}

func (s *SessionStore) fail(operation string, err error) error {
	s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	s.logger.Error("Store mutation failed", "operation", operation, "error", err)
	return fmt.Errorf("%s: %w", operation, err)
}

// SyncRosterSize publishes the current roster length to the roster_size gauge
func (s *SessionStore) SyncRosterSize(ctx context.Context) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return err
	}
	s.metrics.RosterSize.Set(float64(len(users)))
	return nil
}

// Package seed loads the demo roster, schedule, feed and flight fixtures.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/pkg/utils"
)

//go:embed crewlink.toml
var embedded []byte

// Data is the decoded fixture set, ready to hand to the repositories
type Data struct {
	Users             []*entity.User
	Schedule          []*entity.ScheduleEvent
	Expenses          []*entity.Expense
	Notifications     []*entity.Notification
	Flights           []*entity.FlightStatus
	Manuals           []entity.Manual
	PassengerRequests []entity.PassengerRequest
	FAQs              []entity.FAQ
	Smartwatch        *entity.SmartwatchData
}

type fixtureFile struct {
	Users             []userRecord             `toml:"users"`
	Schedule          []eventRecord            `toml:"schedule"`
	Expenses          []expenseRecord          `toml:"expenses"`
	Notifications     []notificationRecord     `toml:"notifications"`
	Flights           []flightRecord           `toml:"flights"`
	Manuals           []manualRecord           `toml:"manuals"`
	PassengerRequests []passengerRequestRecord `toml:"passenger_requests"`
	FAQs              []faqRecord              `toml:"faqs"`
	Smartwatch        *entity.SmartwatchData   `toml:"smartwatch"`
}

type userRecord struct {
	ID              string                 `toml:"id"`
	Name            string                 `toml:"name"`
	Role            entity.Role            `toml:"role"`
	JobTitle        string                 `toml:"job_title"`
	EmployeeID      string                 `toml:"employee_id"`
	Base            string                 `toml:"base"`
	Contact         string                 `toml:"contact"`
	Email           string                 `toml:"email"`
	ProfileImageURL string                 `toml:"profile_image_url"`
	Status          entity.UserStatus      `toml:"status"`
	Compliance      map[string]string      `toml:"compliance"`
	Certifications  []entity.Certification `toml:"certifications"`
}

type eventRecord struct {
	ID                string                             `toml:"id"`
	UserID            string                             `toml:"user_id"`
	Type              entity.EventType                   `toml:"type"`
	Title             string                             `toml:"title"`
	Start             time.Time                          `toml:"start"`
	End               time.Time                          `toml:"end"`
	Location          string                             `toml:"location"`
	ShiftType         entity.ShiftType                   `toml:"shift_type"`
	FlightNumber      string                             `toml:"flight_number"`
	Compliance        map[string]entity.ComplianceStatus `toml:"compliance"`
	FatiguePrediction *entity.FatiguePrediction          `toml:"fatigue_prediction"`
	Crew              []entity.CrewAssignment            `toml:"crew"`
}

type expenseRecord struct {
	ID          string                 `toml:"id"`
	Amount      float64                `toml:"amount"`
	Currency    entity.Currency        `toml:"currency"`
	Category    entity.ExpenseCategory `toml:"category"`
	Date        time.Time              `toml:"date"`
	Description string                 `toml:"description"`
}

type notificationRecord struct {
	ID      int64                   `toml:"id"`
	Type    entity.NotificationType `toml:"type"`
	Title   string                  `toml:"title"`
	Message string                  `toml:"message"`
	Age     string                  `toml:"age"`
	Read    bool                    `toml:"read"`
}

type flightRecord struct {
	FlightNumber  string             `toml:"flight_number"`
	Status        entity.FlightState `toml:"status"`
	Gate          string             `toml:"gate"`
	DepartureTime time.Time          `toml:"departure_time"`
	Remarks       string             `toml:"remarks"`
}

type manualRecord struct {
	ID       int           `toml:"id"`
	Title    string        `toml:"title"`
	Category string        `toml:"category"`
	Version  string        `toml:"version"`
	Roles    []entity.Role `toml:"roles"`
}

type passengerRequestRecord struct {
	ID      int                           `toml:"id"`
	Seat    string                        `toml:"seat"`
	Type    string                        `toml:"type"`
	Request string                        `toml:"request"`
	Status  entity.PassengerRequestStatus `toml:"status"`
}

type faqRecord struct {
	Question string `toml:"question"`
	Answer   string `toml:"answer"`
}

// Load decodes the embedded fixtures. Notification ages are resolved against now.
func Load(now time.Time, rates map[entity.Currency]decimal.Decimal) (*Data, error) {
	return Parse(embedded, now, rates)
}

// LoadFile decodes fixtures from path
func LoadFile(path string, now time.Time, rates map[entity.Currency]decimal.Decimal) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw, now, rates)
}

// Parse decodes and validates a fixture document. Unknown keys are rejected.
func Parse(raw []byte, now time.Time, rates map[entity.Currency]decimal.Decimal) (*Data, error) {
	var file fixtureFile
	md, err := toml.Decode(string(raw), &file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown seed keys: %s", entity.ErrInvalidInput, strings.Join(keys, ", "))
	}

	data := &Data{Smartwatch: file.Smartwatch}

	userIDs := make(map[string]bool, len(file.Users))
	employeeIDs := make(map[string]string, len(file.Users))
	for _, r := range file.Users {
		if userIDs[r.ID] {
			return nil, fmt.Errorf("seed user %s: %w: duplicate id", r.ID, entity.ErrInvalidInput)
		}
		if owner, ok := employeeIDs[r.EmployeeID]; ok && r.EmployeeID != "" {
			return nil, fmt.Errorf("seed user %s: %w: employee id %s already assigned to %s", r.ID, entity.ErrInvalidInput, r.EmployeeID, owner)
		}
		u := &entity.User{
			ID:              r.ID,
			Name:            r.Name,
			Role:            r.Role,
			JobTitle:        r.JobTitle,
			EmployeeID:      r.EmployeeID,
			Base:            r.Base,
			Contact:         r.Contact,
			Email:           r.Email,
			ProfileImageURL: r.ProfileImageURL,
			Status:          r.Status,
			Compliance:      r.Compliance,
			Certifications:  r.Certifications,
		}
		if u.Compliance == nil {
			u.Compliance = map[string]string{}
		}
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", r.ID, err)
		}
		userIDs[u.ID] = true
		employeeIDs[u.EmployeeID] = u.ID
		data.Users = append(data.Users, u)
	}

	eventIDs := make(map[string]bool, len(file.Schedule))
	for _, r := range file.Schedule {
		if eventIDs[r.ID] {
			return nil, fmt.Errorf("seed event %s: %w: duplicate id", r.ID, entity.ErrInvalidInput)
		}
		eventIDs[r.ID] = true
		e := &entity.ScheduleEvent{
			ID:                r.ID,
			UserID:            r.UserID,
			Type:              r.Type,
			Title:             r.Title,
			Start:             r.Start,
			End:               r.End,
			Location:          r.Location,
			ShiftType:         r.ShiftType,
			FlightNumber:      r.FlightNumber,
			Compliance:        r.Compliance,
			FatiguePrediction: r.FatiguePrediction,
			Crew:              r.Crew,
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("seed event %s: %w", r.ID, err)
		}
		if !userIDs[e.UserID] {
			return nil, fmt.Errorf("seed event %s: %w: unknown user %s", r.ID, entity.ErrInvalidInput, e.UserID)
		}
		data.Schedule = append(data.Schedule, e)
	}

	for _, r := range file.Expenses {
		if !r.Currency.Valid() || !r.Category.Valid() {
			return nil, fmt.Errorf("seed expense %s: %w: currency %q category %q", r.ID, entity.ErrInvalidInput, r.Currency, r.Category)
		}
		data.Expenses = append(data.Expenses, &entity.Expense{
			ID:          r.ID,
			Amount:      r.Amount,
			Currency:    r.Currency,
			Category:    r.Category,
			Date:        r.Date,
			Description: r.Description,
			BaseAmount:  utils.ConvertToINR(r.Amount, r.Currency, rates),
		})
	}

	for _, r := range file.Notifications {
		if !r.Type.Valid() {
			return nil, fmt.Errorf("seed notification %d: %w: unknown type %q", r.ID, entity.ErrInvalidInput, r.Type)
		}
		age, err := time.ParseDuration(r.Age)
		if err != nil {
			return nil, fmt.Errorf("seed notification %d: %w: bad age %q", r.ID, entity.ErrInvalidInput, r.Age)
		}
		data.Notifications = append(data.Notifications, &entity.Notification{
			ID:        r.ID,
			Type:      r.Type,
			Title:     r.Title,
			Message:   r.Message,
			CreatedAt: now.Add(-age),
			Read:      r.Read,
		})
	}

	flightNumbers := make(map[string]bool, len(file.Flights))
	for _, r := range file.Flights {
		if flightNumbers[r.FlightNumber] {
			return nil, fmt.Errorf("seed flight %s: %w: duplicate flight number", r.FlightNumber, entity.ErrInvalidInput)
		}
		flightNumbers[r.FlightNumber] = true
		f := &entity.FlightStatus{
			FlightNumber:  r.FlightNumber,
			Status:        r.Status,
			Gate:          r.Gate,
			DepartureTime: r.DepartureTime,
			Remarks:       r.Remarks,
		}
		if f.Status == "" {
			f.Status = entity.FlightOnTime
		}
		if f.FlightNumber == "" {
			return nil, fmt.Errorf("%w: seed flight without flight number", entity.ErrInvalidInput)
		}
		data.Flights = append(data.Flights, f)
	}

	for _, r := range file.Manuals {
		data.Manuals = append(data.Manuals, entity.Manual{
			ID:       r.ID,
			Title:    r.Title,
			Category: r.Category,
			Version:  r.Version,
			Roles:    entity.RoleSetOf(r.Roles...),
		})
	}
	for _, r := range file.PassengerRequests {
		data.PassengerRequests = append(data.PassengerRequests, entity.PassengerRequest{
			ID: r.ID, Seat: r.Seat, Type: r.Type, Request: r.Request, Status: r.Status,
		})
	}
	for _, r := range file.FAQs {
		data.FAQs = append(data.FAQs, entity.FAQ{Question: r.Question, Answer: r.Answer})
	}

	return data, nil
}

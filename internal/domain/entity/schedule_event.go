package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// EventType is the kind of duty on a roster
type EventType string

const (
	EventFlight   EventType = "flight"
	EventLayover  EventType = "layover"
	EventTraining EventType = "training"
	EventOff      EventType = "off"
)

// ShiftType describes the shape of a duty
type ShiftType string

const (
	ShiftNormal     ShiftType = "Normal"
	ShiftEarlyStart ShiftType = "Early Start"
	ShiftLateFinish ShiftType = "Late Finish"
	ShiftSplitDuty  ShiftType = "Split Duty"
)

// ComplianceState is a regulator's verdict on a flight duty
type ComplianceState string

const (
	ComplianceCompliant ComplianceState = "Compliant"
	ComplianceViolation ComplianceState = "Violation"
	CompliancePending   ComplianceState = "Pending"
)

// FatigueRisk buckets a fatigue score
type FatigueRisk string

const (
	FatigueLow    FatigueRisk = "Low"
	FatigueMedium FatigueRisk = "Medium"
	FatigueHigh   FatigueRisk = "High"
)

// ComplianceStatus is one agency's assessment of a flight
type ComplianceStatus struct {
	Status  ComplianceState `json:"status" toml:"status"`
	Details string          `json:"details" toml:"details"`
}

// FatiguePrediction is the predicted fatigue for a flight duty
type FatiguePrediction struct {
	Risk  FatigueRisk `json:"risk" toml:"risk"`
	Score float64     `json:"score" toml:"score"`
}

// CrewAssignment is a roster snapshot entry attached to a flight
type CrewAssignment struct {
	Name string `json:"name" toml:"name"`
	Role string `json:"role" toml:"role"`
}

// ScheduleEvent is a single roster entry for one user
type ScheduleEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      EventType `json:"type"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Location  string    `json:"location"`
	ShiftType ShiftType `json:"shiftType"`

	// Flight events only
	FlightNumber      string                      `json:"flightNumber,omitempty"`
	Compliance        map[string]ComplianceStatus `json:"compliance,omitempty"`
	FatiguePrediction *FatiguePrediction          `json:"fatiguePrediction,omitempty"`
	Crew              []CrewAssignment            `json:"crew,omitempty"`
}

// Clone returns a deep copy of e
func (e *ScheduleEvent) Clone() *ScheduleEvent {
	if e == nil {
		return nil
	}
	c := *e
	if e.Compliance != nil {
		c.Compliance = make(map[string]ComplianceStatus, len(e.Compliance))
		for k, v := range e.Compliance {
			c.Compliance[k] = v
		}
	}
	if e.FatiguePrediction != nil {
		fp := *e.FatiguePrediction
		c.FatiguePrediction = &fp
	}
	if e.Crew != nil {
		c.Crew = append([]CrewAssignment(nil), e.Crew...)
	}
	return &c
}

// Validate checks the invariants every stored event must satisfy
func (e *ScheduleEvent) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	switch e.Type {
	case EventFlight, EventLayover, EventTraining, EventOff:
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, e.Type)
	}
	switch e.ShiftType {
	case ShiftNormal, ShiftEarlyStart, ShiftLateFinish, ShiftSplitDuty:
	default:
		return fmt.Errorf("%w: unknown shift type %q", ErrInvalidInput, e.ShiftType)
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("%w: end %s must be after start %s", ErrInvalidInput,
			e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	for agency, cs := range e.Compliance {
		switch cs.Status {
		case ComplianceCompliant, ComplianceViolation, CompliancePending:
		default:
			return fmt.Errorf("%w: unknown compliance status %q for %s", ErrInvalidInput, cs.Status, agency)
		}
	}
	if fp := e.FatiguePrediction; fp != nil {
		switch fp.Risk {
		case FatigueLow, FatigueMedium, FatigueHigh:
		default:
			return fmt.Errorf("%w: unknown fatigue risk %q", ErrInvalidInput, fp.Risk)
		}
	}
	return nil
}

// Violations returns the agencies that flagged this event, sorted by name
func (e *ScheduleEvent) Violations() []string {
	var out []string
	for agency, cs := range e.Compliance {
		if cs.Status == ComplianceViolation {
			out = append(out, agency)
		}
	}
	slices.Sort(out)
	return out
}

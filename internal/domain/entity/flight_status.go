package entity

import "time"

// FlightState is the operational status of a flight
type FlightState string

const (
	FlightOnTime    FlightState = "On Time"
	FlightDelayed   FlightState = "Delayed"
	FlightBoarding  FlightState = "Boarding"
	FlightDeparted  FlightState = "Departed"
	FlightCancelled FlightState = "Cancelled"
)

// IsTerminal reports whether no automatic transition may leave s
func (s FlightState) IsTerminal() bool {
	return s == FlightDeparted || s == FlightCancelled
}

// FlightStatus is the live status of one flight. It holds only value
// fields so a plain copy never shares state with the registry.
type FlightStatus struct {
	FlightNumber           string      `json:"flightNumber"`
	Status                 FlightState `json:"status"`
	Gate                   string      `json:"gate,omitempty"` // empty when unassigned
	DepartureTime          time.Time   `json:"departureTime"`
	EstimatedDepartureTime time.Time   `json:"estimatedDepartureTime,omitzero"`
	Remarks                string      `json:"remarks,omitempty"`
}

// IsTerminal reports whether the flight reached Departed or Cancelled
func (f FlightStatus) IsTerminal() bool {
	return f.Status.IsTerminal()
}

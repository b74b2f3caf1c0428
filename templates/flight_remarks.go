package templates

import (
	"fmt"
	"time"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/pkg/utils"
)

// CancelledRemark is shown on every cancelled flight
const CancelledRemark = "This flight has been cancelled due to operational reasons."

// DelayedRemark announces the new estimated departure time
func DelayedRemark(etd time.Time) string {
	return fmt.Sprintf("Delayed due to late arrival of incoming aircraft. New ETD: %s", etd.Format(utils.CLOCK_LAYOUT))
}

// BoardingRemark points passengers at the gate
func BoardingRemark(gate string) string {
	if gate == "" {
		return "Now boarding."
	}
	return fmt.Sprintf("Now boarding at Gate %s.", gate)
}

// GateChangeRemark announces a reassigned gate
func GateChangeRemark(gate string) string {
	return fmt.Sprintf("Gate change. Please proceed to Gate %s.", gate)
}

// FlightAlertTitle is "Flight Alert: <flightNumber>"
func FlightAlertTitle(flightNumber string) string {
	return fmt.Sprintf("%s: %s", entity.FlightAlertPrefix, flightNumber)
}

// FlightAlertMessage summarises the new status and its remarks
func FlightAlertMessage(status entity.FlightState, remarks string) string {
	if remarks == "" {
		return fmt.Sprintf("Status is now '%s'.", status)
	}
	return fmt.Sprintf("Status is now '%s'. %s", status, remarks)
}

// NewFlightAlert builds the unread alert emitted for a Delayed or Cancelled transition
func NewFlightAlert(flight *entity.FlightStatus, at time.Time) *entity.Notification {
	return &entity.Notification{
		Type:      entity.NotificationAlert,
		Title:     FlightAlertTitle(flight.FlightNumber),
		Message:   FlightAlertMessage(flight.Status, flight.Remarks),
		CreatedAt: at,
	}
}

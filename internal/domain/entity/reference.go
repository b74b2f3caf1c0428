package entity

// Manual is an operational document gated by role
type Manual struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Version  string  `json:"version"`
	Roles    RoleSet `json:"-"`
}

// PassengerRequestStatus tracks a special-service request
type PassengerRequestStatus string

const (
	PassengerRequestPending   PassengerRequestStatus = "Pending"
	PassengerRequestCompleted PassengerRequestStatus = "Completed"
)

// PassengerRequest is a special-service request for an upcoming flight
type PassengerRequest struct {
	ID      int                    `json:"id"`
	Seat    string                 `json:"seat"`
	Type    string                 `json:"type"`
	Request string                 `json:"request"`
	Status  PassengerRequestStatus `json:"status"`
}

// FAQ is a help-desk question and answer
type FAQ struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

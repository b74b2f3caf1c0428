package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFlightEvent() *ScheduleEvent {
	return &ScheduleEvent{
		ID:           "s1",
		UserID:       "u1",
		Type:         EventFlight,
		Title:        "Delhi to JFK",
		Start:        time.Date(2024, 8, 5, 12, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 8, 6, 4, 0, 0, 0, time.UTC),
		Location:     "DEL -> JFK",
		ShiftType:    ShiftLateFinish,
		FlightNumber: "AI101",
		Compliance: map[string]ComplianceStatus{
			"FAA":  {Status: ComplianceCompliant, Details: "Within Part 117 limits"},
			"DGCA": {Status: ComplianceViolation, Details: "Insufficient rest"},
		},
		FatiguePrediction: &FatiguePrediction{Risk: FatigueHigh, Score: 85},
		Crew:              []CrewAssignment{{Name: "Capt. Arjun Singh", Role: "Pilot"}},
	}
}

func TestScheduleEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *ScheduleEvent)
		wantErr bool
	}{
		{"valid", func(e *ScheduleEvent) {}, false},
		{"missing user", func(e *ScheduleEvent) { e.UserID = "" }, true},
		{"missing title", func(e *ScheduleEvent) { e.Title = "  " }, true},
		{"bad type", func(e *ScheduleEvent) { e.Type = "nap" }, true},
		{"bad shift", func(e *ScheduleEvent) { e.ShiftType = "" }, true},
		{"zero length", func(e *ScheduleEvent) { e.End = e.Start }, true},
		{"bad compliance", func(e *ScheduleEvent) { e.Compliance["EASA"] = ComplianceStatus{Status: "Maybe"} }, true},
		{"bad risk", func(e *ScheduleEvent) { e.FatiguePrediction.Risk = "Extreme" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validFlightEvent()
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleEvent_CloneIsDeep(t *testing.T) {
	orig := validFlightEvent()
	c := orig.Clone()

	c.Compliance["FAA"] = ComplianceStatus{Status: ComplianceViolation}
	c.FatiguePrediction.Score = 10
	c.Crew[0].Name = "Someone Else"

	assert.Equal(t, ComplianceCompliant, orig.Compliance["FAA"].Status)
	assert.Equal(t, 85.0, orig.FatiguePrediction.Score)
	assert.Equal(t, "Capt. Arjun Singh", orig.Crew[0].Name)
	assert.Nil(t, (*ScheduleEvent)(nil).Clone())
}

func TestScheduleEvent_Violations(t *testing.T) {
	e := validFlightEvent()
	e.Compliance["EASA"] = ComplianceStatus{Status: ComplianceViolation}
	assert.Equal(t, []string{"DGCA", "EASA"}, e.Violations())
}

func TestUser_CloneIsDeep(t *testing.T) {
	orig := &User{
		ID:             "u1",
		Name:           "Capt. Arjun Singh",
		Compliance:     map[string]string{"DGCA": "Compliant"},
		Certifications: []Certification{{Name: "A320 Type Rating"}},
	}
	c := orig.Clone()
	c.Compliance["DGCA"] = "Expired"
	c.Certifications[0].Name = "B737"

	assert.Equal(t, "Compliant", orig.Compliance["DGCA"])
	assert.Equal(t, "A320 Type Rating", orig.Certifications[0].Name)
}

func TestUser_Validate(t *testing.T) {
	u := &User{Name: "Priya Sharma", Role: RoleCabinCrew, Status: UserStatusStandby}
	require.NoError(t, u.Validate())

	u.Status = "Retired"
	assert.ErrorIs(t, u.Validate(), ErrInvalidInput)

	u.Status = UserStatusActive
	u.Role = Role(12)
	assert.ErrorIs(t, u.Validate(), ErrInvalidInput)
}

func TestSmartwatchData(t *testing.T) {
	d := &SmartwatchData{
		HeartRate:   80,
		StressLevel: 4,
		Trends:      SmartwatchTrends{HeartRate: []HeartRatePoint{{Time: "00:00", Value: 65}}},
	}
	assert.False(t, d.IndicatesFatigue())

	c := d.Clone()
	c.Trends.HeartRate[0].Value = 99
	assert.Equal(t, 65, d.Trends.HeartRate[0].Value)

	c.HeartRate = 81
	assert.True(t, c.IndicatesFatigue())
	c.HeartRate, c.StressLevel = 70, 5
	assert.True(t, c.IndicatesFatigue())

	assert.False(t, (*SmartwatchData)(nil).IndicatesFatigue())
}

func TestNotification_RelativeTimestamp(t *testing.T) {
	now := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		age  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{5 * time.Minute, "5m ago"},
		{3*time.Hour + 20*time.Minute, "3h ago"},
		{24 * time.Hour, "1d ago"},
		{50 * time.Hour, "2d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			n := Notification{CreatedAt: now.Add(-tt.age)}
			assert.Equal(t, tt.want, n.RelativeTimestamp(now))
		})
	}
}

func TestFlightState_IsTerminal(t *testing.T) {
	assert.True(t, FlightCancelled.IsTerminal())
	assert.True(t, FlightDeparted.IsTerminal())
	assert.False(t, FlightOnTime.IsTerminal())
	assert.False(t, FlightDelayed.IsTerminal())
	assert.False(t, FlightBoarding.IsTerminal())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, CurrencySGD.Valid())
	assert.False(t, Currency("JPY").Valid())
	assert.True(t, ExpenseMisc.Valid())
	assert.False(t, ExpenseCategory("Gifts").Valid())
	assert.True(t, NotificationWellness.Valid())
	assert.False(t, NotificationType("promo").Valid())
}

package usecase

import (
	"strings"
	"time"

	"crewlink-service/internal/domain/entity"
)

// Flight duty period limits
const (
	baseFDP          = 11 * time.Hour
	minFDP           = 9 * time.Hour
	eveningPenalty   = time.Hour
	nightPenalty     = 2 * time.Hour
	sectorPenalty    = 30 * time.Minute
	freeSectors      = 4
	reportLeadTime   = time.Hour
	multiSectorRoute = "->"
)

// DutyInputs is what the FDP calculation needs from a duty
type DutyInputs struct {
	ReportTime time.Time
	Sectors    int
}

// MaxFDP returns the maximum flight duty period for a duty reporting at
// reportTime (wall clock in its own location) with the given sector count
func MaxFDP(reportTime time.Time, sectors int) time.Duration {
	fdp := baseFDP

	switch hour := reportTime.Hour(); {
	case hour >= 22 || hour < 5:
		fdp -= nightPenalty
	case hour >= 17:
		fdp -= eveningPenalty
	}

	if sectors > freeSectors {
		fdp -= time.Duration(sectors-freeSectors) * sectorPenalty
	}

	return max(fdp, minFDP)
}

// FDPEnd returns the latest time the duty may end
func FDPEnd(reportTime time.Time, sectors int) time.Time {
	return reportTime.Add(MaxFDP(reportTime, sectors))
}

// DutyInputsFromFlight prefills the calculator from a flight event: report
// one hour before departure, two sectors for a routed location
func DutyInputsFromFlight(event *entity.ScheduleEvent) DutyInputs {
	sectors := 1
	if strings.Contains(event.Location, multiSectorRoute) {
		sectors = 2
	}
	return DutyInputs{
		ReportTime: event.Start.Add(-reportLeadTime),
		Sectors:    sectors,
	}
}

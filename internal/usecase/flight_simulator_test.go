package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/domain/repository"
	memrepo "crewlink-service/internal/interface/repository"
	"crewlink-service/internal/testutil"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
)

var departure = time.Date(2024, 8, 1, 14, 30, 0, 0, time.UTC)

type simulatorFixture struct {
	sim     *FlightSimulator
	flights repository.FlightStatusRepository
	feed    repository.NotificationRepository
	rng     *testutil.ScriptedRandom
	metrics *metrics.Metrics
}

func newSimulatorFixture(t *testing.T, seed ...*entity.FlightStatus) *simulatorFixture {
	t.Helper()
	f := &simulatorFixture{
		flights: memrepo.NewMemoryFlightStatusRepository(seed),
		feed:    memrepo.NewMemoryNotificationRepository(nil),
		rng:     testutil.NewScriptedRandom(),
		metrics: metrics.NewMetrics("test", prometheus.NewRegistry()),
	}
	f.sim = NewFlightSimulator(f.flights, f.feed, testutil.FixedClock(), f.rng, logger.NewNopLogger(), f.metrics)
	return f
}

func onTime(flightNumber, gate string) *entity.FlightStatus {
	return &entity.FlightStatus{
		FlightNumber:  flightNumber,
		Status:        entity.FlightOnTime,
		Gate:          gate,
		DepartureTime: departure,
	}
}

func TestFlightSimulator_TickTransitions(t *testing.T) {
	tests := []struct {
		name        string
		start       entity.FlightState
		gate        string
		draw        float64
		ints        []int
		wantStatus  entity.FlightState
		wantGate    string
		wantRemarks string
		wantAlert   bool
	}{
		{
			name:        "on time to cancelled",
			start:       entity.FlightOnTime,
			gate:        "D14",
			draw:        0.01,
			wantStatus:  entity.FlightCancelled,
			wantGate:    "D14",
			wantRemarks: "This flight has been cancelled due to operational reasons.",
			wantAlert:   true,
		},
		{
			name:        "on time to delayed",
			start:       entity.FlightOnTime,
			gate:        "D14",
			draw:        0.10,
			wantStatus:  entity.FlightDelayed,
			wantGate:    "D14",
			wantRemarks: "Delayed due to late arrival of incoming aircraft. New ETD: 15:15",
			wantAlert:   true,
		},
		{
			name:        "on time to boarding",
			start:       entity.FlightOnTime,
			gate:        "D14",
			draw:        0.30,
			wantStatus:  entity.FlightBoarding,
			wantGate:    "D14",
			wantRemarks: "Now boarding at Gate D14.",
		},
		{
			name:        "delayed to boarding",
			start:       entity.FlightDelayed,
			gate:        "C28",
			draw:        0.15,
			wantStatus:  entity.FlightBoarding,
			wantGate:    "C28",
			wantRemarks: "Now boarding at Gate C28.",
		},
		{
			name:       "delayed is never cancelled",
			start:      entity.FlightDelayed,
			gate:       "C28",
			draw:       0.01,
			wantStatus: entity.FlightBoarding,
			wantGate:   "C28",
			// falls through to the boarding band
			wantRemarks: "Now boarding at Gate C28.",
		},
		{
			name:        "gate change keeps status",
			start:       entity.FlightOnTime,
			gate:        "D14",
			draw:        0.99,
			ints:        []int{0, 7},
			wantStatus:  entity.FlightOnTime,
			wantGate:    "D17",
			wantRemarks: "Gate change. Please proceed to Gate D17.",
		},
		{
			name:       "gate change skipped without gate",
			start:      entity.FlightOnTime,
			draw:       0.99,
			wantStatus: entity.FlightOnTime,
		},
		{
			name:       "middle band does nothing",
			start:      entity.FlightOnTime,
			gate:       "A3",
			draw:       0.6,
			wantStatus: entity.FlightOnTime,
			wantGate:   "A3",
		},
		{
			name:       "boarding stays boarding",
			start:      entity.FlightBoarding,
			gate:       "A3",
			draw:       0.01,
			wantStatus: entity.FlightBoarding,
			wantGate:   "A3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := onTime("DL287", tt.gate)
			seed.Status = tt.start
			f := newSimulatorFixture(t, seed)
			f.rng.QueueFloats(tt.draw)
			f.rng.QueueInts(tt.ints...)

			result, err := f.sim.Tick(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "DL287", result.FlightNumber)
			assert.Equal(t, tt.start, result.PreviousStatus)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, tt.wantAlert, result.Notified)

			got, err := f.sim.GetStatus(context.Background(), "DL287")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantGate, got.Gate)
			assert.Equal(t, tt.wantRemarks, got.Remarks)

			unread, err := f.feed.CountUnread(context.Background())
			require.NoError(t, err)
			if tt.wantAlert {
				assert.Equal(t, 1, unread)
			} else {
				assert.Zero(t, unread)
			}
		})
	}
}

func TestFlightSimulator_DelaySetsEstimatedDeparture(t *testing.T) {
	f := newSimulatorFixture(t, onTime("AI101", "D18"))
	f.rng.QueueFloats(0.10)

	_, err := f.sim.Tick(context.Background())
	require.NoError(t, err)

	got, err := f.sim.GetStatus(context.Background(), "AI101")
	require.NoError(t, err)
	assert.Equal(t, departure, got.DepartureTime)
	assert.Equal(t, departure.Add(45*time.Minute), got.EstimatedDepartureTime)
	assert.Equal(t, "D18", got.Gate)
}

func TestFlightSimulator_CancellationPublishesAlert(t *testing.T) {
	f := newSimulatorFixture(t, onTime("UK812", "A3"))
	f.rng.QueueFloats(0.02)

	before, err := f.feed.CountUnread(context.Background())
	require.NoError(t, err)

	_, err = f.sim.Tick(context.Background())
	require.NoError(t, err)

	after, err := f.feed.CountUnread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	items, err := f.feed.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, entity.NotificationAlert, items[0].Type)
	assert.Equal(t, "Flight Alert: UK812", items[0].Title)
	assert.True(t, strings.HasPrefix(items[0].Message, "Status is now 'Cancelled'."))
	assert.Equal(t, testutil.FixedClock().Now(), items[0].CreatedAt)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.StatusTransitions.WithLabelValues("On Time", "Cancelled")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.NotificationsEmitted.WithLabelValues("alert")))
}

func TestFlightSimulator_TerminalFlightsAreNeverPicked(t *testing.T) {
	cancelled := onTime("AF225", "D21")
	cancelled.Status = entity.FlightCancelled
	cancelled.Remarks = "This flight has been cancelled due to operational reasons."
	departed := onTime("AF226", "M31")
	departed.Status = entity.FlightDeparted

	f := newSimulatorFixture(t, cancelled, departed)
	for i := 0; i < 20; i++ {
		f.rng.QueueFloats(0.99, 0.01, 0.1)
		result, err := f.sim.Tick(context.Background())
		require.NoError(t, err)
		assert.False(t, result.Evaluated())
	}

	got, err := f.sim.GetStatus(context.Background(), "AF225")
	require.NoError(t, err)
	assert.Equal(t, *cancelled, *got)

	got, err = f.sim.GetStatus(context.Background(), "AF226")
	require.NoError(t, err)
	assert.Equal(t, *departed, *got)
	assert.Equal(t, 20.0, promtestutil.ToFloat64(f.metrics.FlightTicks))
}

func TestFlightSimulator_PicksAmongNonTerminalFlights(t *testing.T) {
	cancelled := onTime("AA100", "B1")
	cancelled.Status = entity.FlightCancelled
	f := newSimulatorFixture(t, cancelled, onTime("DL287", "D14"), onTime("DL288", "C28"))

	// candidates are DL287, DL288; index 1 picks DL288
	f.rng.QueueInts(1)
	f.rng.QueueFloats(0.30)

	result, err := f.sim.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "DL288", result.FlightNumber)

	other, err := f.sim.GetStatus(context.Background(), "DL287")
	require.NoError(t, err)
	assert.Equal(t, entity.FlightOnTime, other.Status)
}

func TestFlightSimulator_AtMostOneFlightChangesPerTick(t *testing.T) {
	seed := []*entity.FlightStatus{
		onTime("6E204", "T2-F4"), onTime("6E205", "14"), onTime("AI101", "D18"), onTime("SG819", "C7"),
	}
	f := newSimulatorFixture(t, seed...)
	draws := []float64{0.01, 0.1, 0.3, 0.99, 0.5, 0.12, 0.35}
	for i, d := range draws {
		before, err := f.sim.ListStatuses(context.Background())
		require.NoError(t, err)

		f.rng.QueueInts(i, 3)
		f.rng.QueueFloats(d)
		_, err = f.sim.Tick(context.Background())
		require.NoError(t, err)

		after, err := f.sim.ListStatuses(context.Background())
		require.NoError(t, err)
		require.Len(t, after, len(before))

		changed := 0
		for j := range before {
			if *before[j] != *after[j] {
				changed++
			}
		}
		assert.LessOrEqual(t, changed, 1)
	}
}

func TestFlightSimulator_ReadsReturnCopies(t *testing.T) {
	f := newSimulatorFixture(t, onTime("EK511", "F12"))

	first, err := f.sim.GetStatus(context.Background(), "EK511")
	require.NoError(t, err)
	first.Status = entity.FlightDeparted
	first.Gate = "Z99"

	second, err := f.sim.GetStatus(context.Background(), "EK511")
	require.NoError(t, err)
	third, err := f.sim.GetStatus(context.Background(), "EK511")
	require.NoError(t, err)
	assert.Equal(t, entity.FlightOnTime, second.Status)
	assert.Equal(t, "F12", second.Gate)
	assert.Equal(t, second, third)
}

func TestFlightSimulator_GetStatusUnknown(t *testing.T) {
	f := newSimulatorFixture(t, onTime("EK511", "F12"))

	_, err := f.sim.GetStatus(context.Background(), "XX000")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestFlightSimulator_RunStopsOnCancel(t *testing.T) {
	f := newSimulatorFixture(t, onTime("EK512", "T3-A10"))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.sim.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return promtestutil.ToFloat64(f.metrics.FlightTicks) >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop after cancel")
	}
}

func TestFlightSimulator_StartStopWaitsForExit(t *testing.T) {
	f := newSimulatorFixture(t, onTime("EK512", "T3-A10"))

	task := f.sim.Start(context.Background(), 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return promtestutil.ToFloat64(f.metrics.FlightTicks) >= 1
	}, time.Second, 5*time.Millisecond)

	task.Stop()
	select {
	case <-task.Done():
	default:
		t.Fatal("task still running after Stop")
	}

	ticks := promtestutil.ToFloat64(f.metrics.FlightTicks)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, ticks, promtestutil.ToFloat64(f.metrics.FlightTicks))
}

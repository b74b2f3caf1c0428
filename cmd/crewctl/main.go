package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/infrastructure/seed"
	memRepo "crewlink-service/internal/interface/repository"
	"crewlink-service/internal/usecase"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
	"crewlink-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env is the in-memory world a command runs against
type env struct {
	data      *seed.Data
	log       logger.Logger
	metrics   *metrics.Metrics
	simulator *usecase.FlightSimulator
	store     *usecase.SessionStore
	feed      *usecase.NotificationFeed
	wellness  *usecase.WellnessService
	library   *usecase.ReferenceLibrary
}

// newEnv loads fixtures (embedded unless --seed-file is set) and wires the use cases
func newEnv(cmd *cobra.Command, rngSeed uint64) (*env, error) {
	seedFile, _ := cmd.Flags().GetString("seed-file")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var log logger.Logger = logger.NewNopLogger()
	if verbose {
		log = logger.NewLoggerWithLevel("debug")
	}

	clock := utils.RealClock{}
	var (
		data *seed.Data
		err  error
	)
	if seedFile != "" {
		data, err = seed.LoadFile(seedFile, clock.Now(), utils.DefaultRates)
	} else {
		data, err = seed.Load(clock.Now(), utils.DefaultRates)
	}
	if err != nil {
		return nil, fmt.Errorf("loading seed data: %w", err)
	}

	m := metrics.NewMetrics("crewctl", prometheus.NewRegistry())
	rng := utils.NewRandom(rngSeed)
	notifications := memRepo.NewMemoryNotificationRepository(data.Notifications)

	return &env{
		data:    data,
		log:     log,
		metrics: m,
		simulator: usecase.NewFlightSimulator(memRepo.NewMemoryFlightStatusRepository(data.Flights),
			notifications, clock, rng, log, m),
		store: usecase.NewSessionStore(memRepo.NewMemoryUserRepository(data.Users),
			memRepo.NewMemoryScheduleRepository(data.Schedule), memRepo.NewMemoryExpenseRepository(data.Expenses),
			utils.ObjectIDGenerator{}, rng, utils.DefaultRates, 50000, log, m),
		feed:     usecase.NewNotificationFeed(notifications, clock, log, m),
		wellness: usecase.NewWellnessService(memRepo.NewMemoryWellnessRepository(data.Smartwatch), rng, log, m),
		library:  usecase.NewReferenceLibrary(data.Manuals, data.PassengerRequests, data.FAQs),
	}, nil
}

func roleFlag(cmd *cobra.Command) (entity.Role, error) {
	raw, _ := cmd.Flags().GetString("role")
	return entity.ParseRole(raw)
}

var rootCmd = &cobra.Command{
	Use:          "crewctl",
	Short:        "CrewLink operator tool",
	SilenceUsage: true,
}

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Show the navigation a role sees",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := roleFlag(cmd)
		if err != nil {
			return err
		}

		nav := usecase.ResolveNavigation(usecase.DefaultMainNav(), usecase.DefaultCategories(), role)

		fmt.Printf("Navigation for %s\n\n", role)
		printGroup("Main", nav.Main)
		printGroup("Features", nav.Features)
		printGroup("Admin", nav.Admin)
		if nav.Support != nil {
			printGroup("Support", []entity.NavItem{*nav.Support})
		}
		return nil
	},
}

func printGroup(title string, items []entity.NavItem) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item.Name)
	}
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run flight status ticks against the fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ticks, _ := cmd.Flags().GetInt("ticks")
		rngSeed, _ := cmd.Flags().GetUint64("seed")

		e, err := newEnv(cmd, rngSeed)
		if err != nil {
			return err
		}
		ctx := context.Background()

		for i := 1; i <= ticks; i++ {
			result, err := e.simulator.Tick(ctx)
			if err != nil {
				return fmt.Errorf("tick %d: %w", i, err)
			}
			switch {
			case !result.Evaluated():
				fmt.Printf("%4d  no active flights\n", i)
			case result.StatusChanged():
				fmt.Printf("%4d  %-6s %s -> %s\n", i, result.FlightNumber, result.PreviousStatus, result.Status)
			case result.GateChanged():
				fmt.Printf("%4d  %-6s gate %s -> %s\n", i, result.FlightNumber, result.PreviousGate, result.Gate)
			}
		}

		statuses, err := e.simulator.ListStatuses(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		for _, s := range statuses {
			fmt.Printf("%-6s %-10s %-7s %s\n", s.FlightNumber, s.Status, s.Gate, s.Remarks)
		}

		alerts, err := e.feed.FlightAlerts(ctx)
		if err != nil {
			return err
		}
		unread, err := e.feed.UnreadCount(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d flight alerts, %d unread notifications\n", len(alerts), unread)
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an expense amount to INR",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, _ := cmd.Flags().GetFloat64("amount")
		currency, _ := cmd.Flags().GetString("currency")

		c := entity.Currency(currency)
		if !c.Valid() {
			return fmt.Errorf("unknown currency %q", currency)
		}
		fmt.Printf("%.2f %s = %s\n", amount, c, utils.FormatINR(utils.ConvertToINR(amount, c, utils.DefaultRates)))
		return nil
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List crew members",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		e, err := newEnv(cmd, 0)
		if err != nil {
			return err
		}
		ctx := context.Background()

		users, err := e.store.SearchCrew(ctx, search)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No crew members found.")
			return nil
		}
		for _, u := range users {
			events, err := e.store.ScheduleForUser(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%-7s %-20s %-13s %-8s %d duties\n", u.EmployeeID, u.Name, u.Role, u.Status, len(events))
		}
		return nil
	},
}

var manualsCmd = &cobra.Command{
	Use:   "manuals",
	Short: "List manuals available to a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		role, err := roleFlag(cmd)
		if err != nil {
			return err
		}

		e, err := newEnv(cmd, 0)
		if err != nil {
			return err
		}
		for _, m := range e.library.Manuals(role, query) {
			fmt.Printf("%-40s %-18s v%s\n", m.Title, m.Category, m.Version)
		}
		return nil
	},
}

var dutyCmd = &cobra.Command{
	Use:   "duty",
	Short: "Calculate the maximum flight duty period",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, _ := cmd.Flags().GetString("report")
		sectors, _ := cmd.Flags().GetInt("sectors")

		roleName, _ := cmd.Flags().GetString("role")

		reportTime, err := time.Parse(utils.CLOCK_LAYOUT, report)
		if err != nil {
			return fmt.Errorf("report time must be HH:MM: %w", err)
		}
		if roleName != "" {
			// prefill from the role's next departure
			role, err := roleFlag(cmd)
			if err != nil {
				return err
			}
			e, err := newEnv(cmd, 0)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if _, err := e.store.Login(ctx, role); err != nil {
				return err
			}
			flight, ok, err := e.store.NextDeparture(ctx, time.Now())
			if err != nil {
				return err
			}
			if ok {
				inputs := usecase.DutyInputsFromFlight(flight)
				reportTime, sectors = inputs.ReportTime, inputs.Sectors
				fmt.Printf("Prefilled from %s (%s)\n", flight.FlightNumber, flight.Location)
			}
		}
		if sectors < 1 {
			return fmt.Errorf("sectors must be at least 1")
		}

		fdp := usecase.MaxFDP(reportTime, sectors)
		fmt.Printf("Max FDP: %s\n", fdp)
		fmt.Printf("Duty must end by: %s\n", usecase.FDPEnd(reportTime, sectors).Format(utils.CLOCK_LAYOUT))
		return nil
	},
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the assistant context for a role as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := roleFlag(cmd)
		if err != nil {
			return err
		}
		sync, _ := cmd.Flags().GetBool("sync")

		e, err := newEnv(cmd, 0)
		if err != nil {
			return err
		}
		ctx := context.Background()

		if _, err := e.store.Login(ctx, role); err != nil {
			return err
		}
		if sync {
			if _, _, err := e.wellness.Sync(ctx); err != nil {
				return err
			}
		}

		snapshot, ok, err := usecase.NewAssistantContextBuilder(e.store, e.wellness).Build(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no active session")
		}
		raw, err := snapshot.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("seed-file", "", "Load fixtures from a TOML file instead of the built-in set")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log use case activity to stderr")

	rootCmd.AddCommand(navCmd)
	navCmd.Flags().StringP("role", "r", "Pilot", "Role to resolve navigation for")

	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntP("ticks", "n", 20, "Number of ticks to run")
	simulateCmd.Flags().Uint64("seed", 0, "Random seed (0 picks one from the clock)")

	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().Float64P("amount", "a", 0, "Amount in the source currency")
	convertCmd.Flags().StringP("currency", "c", "USD", "Source currency (USD, EUR, SGD, INR)")

	rootCmd.AddCommand(rosterCmd)
	rosterCmd.Flags().StringP("search", "s", "", "Filter by name or job title")

	rootCmd.AddCommand(manualsCmd)
	manualsCmd.Flags().StringP("role", "r", "Pilot", "Role to list manuals for")
	manualsCmd.Flags().StringP("query", "q", "", "Filter by title or category")

	rootCmd.AddCommand(dutyCmd)
	dutyCmd.Flags().String("report", "08:00", "Report time, HH:MM")
	dutyCmd.Flags().Int("sectors", 1, "Number of sectors")
	dutyCmd.Flags().StringP("role", "r", "", "Prefill from the next departure of this role's user")

	rootCmd.AddCommand(contextCmd)
	contextCmd.Flags().StringP("role", "r", "Pilot", "Role to log in as")
	contextCmd.Flags().Bool("sync", false, "Sync the smartwatch before building the context")
}

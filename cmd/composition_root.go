package cmd

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	httpin "offroute/internal/adapters/in/http"
	"offroute/internal/adapters/out/kafka"
	"offroute/internal/adapters/out/postgres"
	"offroute/internal/adapters/out/postgres/routerepo"
	"offroute/internal/adapters/out/postgres/triprepo"
	"offroute/internal/adapters/out/rediscache"
	"offroute/internal/core/application/usecases/commands"
	"offroute/internal/core/application/usecases/queries"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/core/domain/services"
	"offroute/internal/core/ports"
	"offroute/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     offroute.Policy
	logger     *slog.Logger

	routeCache *rediscache.RouteCache
	dispatcher *kafka.Dispatcher
	directory  ports.TripDirectory
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, policy offroute.Policy, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		logger:     logger,
		routeCache: rediscache.NewRouteCache(
			configs.RedisAddr,
			routerepo.NewGormRouteRepository(gormDB),
			routeCacheTTL(configs.RouteCacheTTL),
			logger,
		),
		dispatcher: kafka.NewDispatcher(kafkaBrokers(configs.KafkaBrokers), configs.KafkaOffRouteTopic),
		directory:  triprepo.NewGormTripRepository(gormDB),
	}
}

func (c *CompositionRoot) CreateWarningNotifier() *commands.WarningNotifier {
	return commands.NewWarningNotifier(c.directory, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateProcessLocationUpdateCommandHandler() commands.ProcessLocationUpdateCommandHandler {
	var f commands.IngestUoWFactory = FuncIngestUoWFactory(func() commands.IngestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessLocationUpdateCommandHandler(
		f,
		c.routeCache,
		c.directory,
		services.NewDeviationCalculator(),
		c.policy,
		c.CreateWarningNotifier(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateCheckAndSendWarningsCommandHandler() commands.CheckAndSendWarningsCommandHandler {
	return commands.NewCheckAndSendWarningsCommandHandler(c.eventUoWFactory(), c.policy, c.CreateWarningNotifier(), c.logger)
}

func (c *CompositionRoot) CreateCheckContactedWaitingReturnCommandHandler() commands.CheckContactedWaitingReturnCommandHandler {
	return commands.NewCheckContactedWaitingReturnCommandHandler(c.eventUoWFactory(), c.CreateWarningNotifier(), c.logger)
}

func (c *CompositionRoot) CreateConfirmSafeCommandHandler() commands.ConfirmSafeCommandHandler {
	return commands.NewConfirmSafeCommandHandler(c.eventUoWFactory())
}

func (c *CompositionRoot) CreateMarkNoContactCommandHandler() commands.MarkNoContactCommandHandler {
	return commands.NewMarkNoContactCommandHandler(c.eventUoWFactory())
}

func (c *CompositionRoot) CreateConfirmContactCommandHandler() commands.ConfirmContactCommandHandler {
	return commands.NewConfirmContactCommandHandler(c.eventUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateExtendGracePeriodCommandHandler() commands.ExtendGracePeriodCommandHandler {
	return commands.NewExtendGracePeriodCommandHandler(c.eventUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateCreateIssueFromEventCommandHandler() commands.CreateIssueFromEventCommandHandler {
	var f commands.IssueUoWFactory = FuncIssueUoWFactory(func() commands.IssueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateIssueFromEventCommandHandler(f, c.directory, c.logger)
}

func (c *CompositionRoot) CreateResetOffRouteEventCommandHandler() commands.ResetOffRouteEventCommandHandler {
	return commands.NewResetOffRouteEventCommandHandler(c.eventUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetActiveEventsQueryHandler() queries.GetActiveEventsQueryHandler {
	return queries.NewGetActiveEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEventsByOrderQueryHandler() queries.GetEventsByOrderQueryHandler {
	return queries.NewGetEventsByOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEventDetailQueryHandler() queries.GetEventDetailQueryHandler {
	return queries.NewGetEventDetailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	ingest := c.CreateProcessLocationUpdateCommandHandler()
	confirmSafe := c.CreateConfirmSafeCommandHandler()
	markNoContact := c.CreateMarkNoContactCommandHandler()
	confirmContact := c.CreateConfirmContactCommandHandler()
	extend := c.CreateExtendGracePeriodCommandHandler()
	createIssue := c.CreateCreateIssueFromEventCommandHandler()
	reset := c.CreateResetOffRouteEventCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		ProcessLocationUpdate: &ingest,
		ConfirmSafe:           &confirmSafe,
		MarkNoContact:         &markNoContact,
		ConfirmContact:        &confirmContact,
		ExtendGracePeriod:     &extend,
		CreateIssue:           &createIssue,
		Reset:                 &reset,
		ActiveEvents:          c.CreateGetActiveEventsQueryHandler(),
		EventsByOrder:         c.CreateGetEventsByOrderQueryHandler(),
		EventDetail:           c.CreateGetEventDetailQueryHandler(),
	}, time.Now)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	warnings := c.CreateCheckAndSendWarningsCommandHandler()
	grace := c.CreateCheckContactedWaitingReturnCommandHandler()
	return jobs.NewJobManager(&warnings, &grace, c.configs.SchedulerSpec, time.Now, c.logger)
}

// Close releases the Redis and Kafka clients.
func (c *CompositionRoot) Close() error {
	cacheErr := c.routeCache.Close()
	if err := c.dispatcher.Close(); err != nil {
		return err
	}
	return cacheErr
}

func (c *CompositionRoot) eventUoWFactory() commands.EventUoWFactory {
	return FuncEventUoWFactory(func() commands.EventUoW {
		return c.uowFactory.Create()
	})
}

func routeCacheTTL(seconds string) time.Duration {
	n, err := strconv.Atoi(seconds)
	if err != nil || n <= 0 {
		return rediscache.DefaultTTL
	}
	return time.Duration(n) * time.Second
}

func kafkaBrokers(list string) []string {
	brokers := make([]string, 0)
	for _, b := range strings.Split(list, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type FuncEventUoWFactory func() commands.EventUoW

func (f FuncEventUoWFactory) Create() commands.EventUoW {
	return f()
}

type FuncIngestUoWFactory func() commands.IngestUoW

func (f FuncIngestUoWFactory) Create() commands.IngestUoW {
	return f()
}

type FuncIssueUoWFactory func() commands.IssueUoW

func (f FuncIssueUoWFactory) Create() commands.IssueUoW {
	return f()
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	dashboardservice "punchclock/internal/dashboard/service"
	employeemodels "punchclock/internal/employee/models"
	employeeservice "punchclock/internal/employee/service"
	employeestore "punchclock/internal/employee/store"
	"punchclock/internal/kiosk/lockout"
	kioskservice "punchclock/internal/kiosk/service"
	"punchclock/internal/kiosk/store/devicelock"
	"punchclock/internal/platform/config"
	"punchclock/internal/platform/kafka"
	"punchclock/internal/platform/postgres"
	"punchclock/internal/platform/redis"
	settingsservice "punchclock/internal/settings/service"
	settingsstore "punchclock/internal/settings/store"
	tcservice "punchclock/internal/timeclock/service"
	tcstore "punchclock/internal/timeclock/store"
	id "punchclock/pkg/domain"
	audit "punchclock/pkg/platform/audit"
	auditmemory "punchclock/pkg/platform/audit/store/memory"
	auditpostgres "punchclock/pkg/platform/audit/store/postgres"
	"punchclock/pkg/platform/audit/worker"
	txcontext "punchclock/pkg/platform/tx"
)

type (
	settingsStore   = settingsservice.Store
	deviceLockStore = lockout.DeviceLockStore
	txRunner        = tcservice.TxRunner
)

type eventStore interface {
	tcservice.Store
	dashboardservice.EventReader
}

type auditStore interface {
	audit.Store
	dashboardservice.AuditCounter
}

type employeeStore interface {
	employeeservice.Store
	tcservice.EmployeeLookup
	kioskservice.EmployeeDirectory
	lockout.EmployeeLockStore
}

// infra is the storage set chosen from configuration. Postgres backs
// everything when DATABASE_URL is set; otherwise state lives in memory and
// transactions are serialized in process.
type infra struct {
	settings    settingsStore
	employees   employeeStore
	events      eventStore
	audit       auditStore
	deviceLocks deviceLockStore
	tx          txRunner
	relay       *worker.Worker

	demoCompany   id.CompanyID
	demoEmployees []employeemodels.Profile

	// checks back /readyz, keyed by dependency name.
	checks  map[string]func(context.Context) error
	closers []func()
}

func (i *infra) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		i.closers[j]()
	}
}

func buildInfra(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	inf := &infra{checks: make(map[string]func(context.Context) error)}

	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		inf.settings = settingsstore.NewInMemory()
		employees := employeestore.NewInMemory()
		companyID, seeded := employeestore.SeedDemoCompany(employees)
		inf.demoCompany, inf.demoEmployees = companyID, seeded
		for _, e := range seeded {
			log.Info("seeded demo employee",
				"company_id", companyID.String(),
				"employee_id", e.ID.String(),
				"user_id", e.UserID.String(),
			)
		}
		inf.employees = employees
		inf.events = tcstore.NewInMemory()
		inf.audit = auditmemory.NewInMemoryStore()
		inf.tx = &txcontext.Serial{}
	} else {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		inf.closers = append(inf.closers, func() { _ = db.Close() })
		inf.checks["postgres"] = db.PingContext
		if cfg.Database.RunMigrations {
			if err := postgres.Migrate(db, log); err != nil {
				inf.Close()
				return nil, err
			}
		}
		outbox := auditpostgres.New(db)
		inf.settings = settingsstore.NewPostgres(db)
		inf.employees = employeestore.NewPostgres(db)
		inf.events = tcstore.NewPostgres(db)
		inf.audit = outbox
		inf.tx = postgres.NewTxRunner(db, cfg.Database.TxTimeout)

		relay, err := buildRelay(ctx, cfg, log, outbox)
		if err != nil {
			inf.Close()
			return nil, err
		}
		if relay != nil {
			inf.relay = relay.worker
			inf.closers = append(inf.closers, relay.close)
			inf.checks["kafka"] = relay.ping
		}
	}

	locks, err := buildDeviceLocks(ctx, cfg, log, inf)
	if err != nil {
		inf.Close()
		return nil, err
	}
	inf.deviceLocks = locks
	return inf, nil
}

func buildDeviceLocks(ctx context.Context, cfg config.Config, log *slog.Logger, inf *infra) (deviceLockStore, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		log.Info("REDIS_URL not set, kiosk device locks kept in memory")
		return devicelock.NewInMemory(cfg.Kiosk.DeviceStateTTL), nil
	}
	inf.closers = append(inf.closers, func() { _ = client.Close() })
	inf.checks["redis"] = client.Health
	return devicelock.NewRedis(client.Client, cfg.Kiosk.DeviceStateTTL, devicelock.WithKeyPrefix(client.Prefix())), nil
}

type relay struct {
	worker *worker.Worker
	ping   func(context.Context) error
	close  func()
}

// buildRelay starts the outbox relay when Kafka brokers are configured.
// Audit rows still commit with their punches when the relay is off.
func buildRelay(ctx context.Context, cfg config.Config, log *slog.Logger, outbox *auditpostgres.Store) (*relay, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info("KAFKA_BROKERS not set, audit outbox relay disabled")
		return nil, nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
	if err != nil {
		return nil, err
	}
	if err := producer.Ping(ctx); err != nil {
		producer.Close()
		return nil, fmt.Errorf("kafka ping: %w", err)
	}
	if err := producer.EnsureTopic(ctx, 3, 1); err != nil {
		producer.Close()
		return nil, err
	}
	w := worker.NewWorker(outbox, producer,
		worker.WithLogger(log),
		worker.WithInterval(cfg.Kafka.RelayInterval),
		worker.WithBatchSize(cfg.Kafka.RelayBatch),
	)
	return &relay{worker: w, ping: producer.Ping, close: producer.Close}, nil
}

package main // Entry point for the interactive booking console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/iliyamo/hotel-room-booking/internal/config"
	"github.com/iliyamo/hotel-room-booking/internal/console"
	"github.com/iliyamo/hotel-room-booking/internal/database"
	"github.com/iliyamo/hotel-room-booking/internal/hotel"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code once every deferred close has run.
func run() int {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Printf("store: %v", err)
		return 1
	}
	defer closeBackend()

	provider := repository.NewProvider(backend)
	opts := []hotel.Option{hotel.WithPayment(hotel.SimulatedPayment{Delay: cfg.PaymentDelay})}
	state, loaded := provider.LoadOrNew(ctx, opts...)
	if loaded {
		fmt.Println("Existing data loaded.")
	} else {
		fmt.Println("New hotel data created.")
	}
	log.Printf("store: %s (env=%s)", provider.Location(), cfg.Env)

	var events service.EventPublisher = service.NopPublisher{}
	if url := cfg.BrokerURL(); url != "" {
		pub, err := service.NewPublisher(url)
		if err != nil {
			log.Printf("rabbitmq: booking events disabled: %v", err)
		} else {
			defer pub.Close()
			events = pub
		}
	}

	sh := console.New(state, provider, events, os.Stdin, os.Stdout)
	if err := sh.Run(ctx); err != nil {
		if errors.Is(err, console.ErrInputClosed) {
			log.Printf("input closed; changes since the last save were not written")
			return 0
		}
		log.Printf("console: %v", err)
		return 1
	}
	return 0
}

// openBackend builds the snapshot backend selected by STORE_DRIVER.  The
// returned func releases any connection it opened.
func openBackend(ctx context.Context, cfg config.Config) (repository.Backend, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		rdb, err := config.NewRedisClient(ctx, cfg.RedisConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisConfig.Address(), err)
		}
		return repository.NewRedisBackend(rdb, cfg.RedisConfig.SnapshotKey), func() { _ = rdb.Close() }, nil
	case config.DriverMySQL:
		db, err := database.Open(ctx, cfg.DBConfig.User, cfg.DBConfig.Pass, cfg.DBConfig.Host, cfg.DBConfig.Port, cfg.DBConfig.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql: %w", err)
		}
		backend := repository.NewMySQLBackend(db, cfg.DBConfig.SnapshotName)
		if err := backend.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("mysql schema: %w", err)
		}
		return backend, func() { _ = db.Close() }, nil
	}
	return repository.NewFileBackend(cfg.DataFile), func() {}, nil
}

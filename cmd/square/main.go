package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/squaresim/backend/internal/config"
	"github.com/squaresim/backend/internal/core/event"
	coresys "github.com/squaresim/backend/internal/core/system"
	"github.com/squaresim/backend/internal/data"
	"github.com/squaresim/backend/internal/ipc"
	"github.com/squaresim/backend/internal/persist"
	"github.com/squaresim/backend/internal/protocol"
	"github.com/squaresim/backend/internal/system"
	"github.com/squaresim/backend/internal/world"
)

const defaultConfigPath = "config/square.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config. An explicitly named file must exist.
	cfgPath, optional := defaultConfigPath, true
	if p := os.Getenv("SQUARE_CONFIG"); p != "" {
		cfgPath, optional = p, false
	}
	cfg, err := config.Load(cfgPath, optional)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger. stdout carries responses, so logs go to stderr.
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. World, event bus and seed entities
	state := world.NewState()
	bus := event.NewBus()
	subscribeEventLog(bus, log)

	if cfg.Seed.Path != "" {
		seeds, err := data.LoadSeedTable(cfg.Seed.Path)
		if err != nil {
			return fmt.Errorf("load seed list: %w", err)
		}
		seeds.Spawn(state)
		st := state.ECS.Commit()
		log.Info("seed entities spawned",
			zap.String("path", cfg.Seed.Path),
			zap.Int("entities", st.Activated),
		)
	}

	// 4. Protocol handler
	reg := protocol.NewRegistry(log)
	protocol.RegisterAll(reg)
	handler := protocol.NewHandler(reg, state, bus, log)

	// 5. Command stream. The reader stays outside the errgroup: its blocking
	// read cannot be interrupted, so shutdown does not wait for it.
	queue := ipc.NewQueue(cfg.IPC.QueueSize)
	reader := ipc.NewReader(os.Stdin, queue, cfg.IPC.MaxLineBytes, log)
	go reader.Run(ctx)

	g, gctx := errgroup.WithContext(ctx)
	runner := coresys.NewRunner()

	// 6. Optional command journal
	var (
		recorder system.CommandRecorder
		journal  *system.JournalSystem
		writer   *persist.JournalWriter
	)
	if cfg.Journal.Enabled {
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(dbCtx, cfg.Journal, log)
		if err != nil {
			return fmt.Errorf("journal database: %w", err)
		}
		defer db.Close()
		if _, err := persist.RunMigrations(dbCtx, db.Pool, log); err != nil {
			return fmt.Errorf("journal migrations: %w", err)
		}

		runID := uuid.New()
		writer = persist.NewJournalWriter(persist.NewJournalRepo(db), cfg.Journal.BufferSize, cfg.Journal.WriteTimeout, log)
		journal = system.NewJournalSystem(writer, runID, cfg.Journal.BatchSize, cfg.Journal.FlushInterval)
		recorder = journal
		runner.Register(journal)
		g.Go(func() error { return writer.Run(gctx) })
		log.Info("command journal enabled", zap.String("run_id", runID.String()))
	}

	// 7. Systems. The runner orders them by phase.
	out := ipc.NewLineWriter(os.Stdout)
	runner.Register(system.NewInputSystem(queue, handler, out, recorder, log))
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewCommitSystem(state.ECS, log))

	// 8. Tick loop
	log.Info("simulation started",
		zap.String("server", cfg.Server.Name),
		zap.Duration("tick_rate", cfg.Loop.TickRate),
		zap.Strings("methods", reg.Methods()),
	)
	g.Go(func() error {
		defer func() {
			if journal != nil {
				journal.Flush()
				writer.Close()
			}
		}()
		return runner.Run(gctx, cfg.Loop.TickRate)
	})

	err = g.Wait()
	fields := []zap.Field{
		zap.Uint64("ticks", runner.Ticks()),
		zap.Uint64("responses", out.Lines()),
		zap.Int("entities", state.ECS.Pool().Len()),
	}
	if journal != nil {
		fields = append(fields, zap.Int("journal_dropped", journal.Dropped()))
	}
	log.Info("simulation stopped", fields...)

	// End of input is the normal way to stop.
	if errors.Is(err, ipc.ErrDisconnected) && queue.Err() == nil {
		return nil
	}
	return err
}

func subscribeEventLog(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.EntitySpawned) {
		log.Debug("entity spawned",
			zap.Stringer("entity", ev.Entity),
			zap.String("id", ev.RequestID),
			zap.String("method", ev.Method),
		)
	})
	event.Subscribe(bus, func(ev event.VelocityChanged) {
		log.Debug("velocity changed",
			zap.Stringer("entity", ev.Entity),
			zap.String("id", ev.RequestID),
			zap.Float32("old_x", ev.Old.X),
			zap.Float32("old_y", ev.Old.Y),
			zap.Float32("x", ev.New.X),
			zap.Float32("y", ev.New.Y),
		)
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comalice/stateflow"
	"github.com/comalice/stateflow/builder"
	"github.com/comalice/stateflow/internal/config"
	"github.com/comalice/stateflow/internal/extensibility"
	"github.com/comalice/stateflow/internal/logging"
	"github.com/comalice/stateflow/internal/production"
	"github.com/comalice/stateflow/realtime"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	def, err := loadDefinition(cfg.Definition)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	records := make(chan stateflow.TransitionRecord, 100)
	publisher := production.NewChannelPublisher(records)
	opts := []stateflow.Option{
		stateflow.WithMachineID(cfg.MachineID),
		stateflow.WithLogger(logger),
		stateflow.WithPublisher(publisher),
		stateflow.WithLocking(),
	}
	var persister stateflow.Persister = production.NewMemoryRegistry()
	if cfg.SnapshotDir != "" {
		persister, err = production.NewPersister(cfg.SnapshotDir, cfg.SnapshotFormat)
		if err != nil {
			return err
		}
	}
	if snap, err := persister.Load(ctx, cfg.MachineID); err == nil {
		logger.Info("previous run found",
			slog.String("state", def.StateName(snap.Current)),
			slog.String("version", snap.Version),
		)
	}
	opts = append(opts, stateflow.WithPersister(persister))

	m, err := newMachine(def, logger, opts...)
	if err != nil {
		return err
	}

	effects := extensibility.NewEffectRegistry()
	if err := effects.Register("click", func() { logger.Info("click") }); err != nil {
		return err
	}
	if err := effects.Register("quit", quit); err != nil {
		return err
	}
	if err := effects.Check(def); err != nil {
		return err
	}
	if err := m.Apply(def, effects.Map(logger)); err != nil {
		return err
	}

	rt := realtime.NewRuntime(m, realtime.Config{
		TickRate:         cfg.TickRate,
		MaxEventsPerTick: cfg.MaxEventsPerTick,
	}, realtime.WithLogger(logger))
	if err := rt.Start(ctx); err != nil {
		return err
	}
	defer rt.Stop()

	var consumers errgroup.Group
	consumers.Go(func() error {
		for rec := range records {
			logger.Info("transition published",
				slog.String("id", rec.ID.String()),
				slog.String("from", def.StateName(rec.From)),
				slog.String("to", def.StateName(rec.To)),
				slog.String("event", def.EventName(rec.Event)),
			)
		}
		return nil
	})

	// One scripted input per timer tick, queued on the realtime runtime.
	timer := extensibility.NewTimerEventSource(0, 10*cfg.TickRate)
	defer timer.Stop()
	step := 0
	feed := extensibility.ProcessorFunc(func(_ context.Context, _ stateflow.EventID) error {
		if step >= len(script) {
			quit()
			return nil
		}
		e := script[step]
		step++
		return rt.SendEvent(e)
	})
	err = extensibility.Pump(ctx, timer, feed, func(_ stateflow.EventID, err error) {
		logger.Warn("input dropped", slog.Any("error", err))
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	rt.Stop()
	rt.Tick(context.Background())
	publisher.Close()
	if err := consumers.Wait(); err != nil {
		return err
	}

	fmt.Println(exportDOT(m, def))
	if snap, err := persister.Load(context.Background(), cfg.MachineID); err == nil {
		logger.Info("snapshot saved",
			slog.String("state", def.StateName(snap.Current)),
			slog.String("version", snap.Version),
		)
	}
	if n := publisher.Dropped(); n > 0 {
		logger.Warn("transition records dropped", slog.Uint64("count", n))
	}
	return nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(
		logging.WithLevel(level),
		logging.WithFormat(format),
		logging.WithOutput(os.Stderr),
		logging.WithAttr(slog.String("service", "stateflow-demo")),
	), nil
}

// newMachine creates one screen per declared state. Deferred screens are
// built on first entry.
func newMachine(def stateflow.Definition, logger *slog.Logger, opts ...stateflow.Option) (*stateflow.Manager[*builder.FuncState], error) {
	screen := func(sd stateflow.StateDef) []builder.Option {
		started := time.Time{}
		return []builder.Option{
			builder.OnActivate(func() {
				started = time.Now()
				logger.Info("screen shown", slog.String("screen", sd.Name))
			}),
			builder.OnDeactivate(func() {
				if started.IsZero() {
					return
				}
				logger.Debug("screen hidden", slog.String("screen", sd.Name), slog.Duration("visible", time.Since(started)))
			}),
		}
	}

	m := stateflow.NewManager[*builder.FuncState](opts...)
	for _, sd := range def.States {
		if sd.Deferred {
			id, _ := sd.ID.Value()
			sid, build := builder.Deferred(id, sd.Name, screen(sd)...)
			if err := m.RegisterDeferredState(sid, build); err != nil {
				return nil, err
			}
			continue
		}
		id, _ := sd.ID.Value()
		s := builder.Named(id, sd.Name, screen(sd)...)
		if sd.ID == def.Initial {
			if err := m.RegisterInitialState(s); err != nil {
				return nil, err
			}
			continue
		}
		if err := m.RegisterState(s); err != nil {
			return nil, err
		}
	}
	if _, err := m.CurrentState(); err != nil {
		return nil, fmt.Errorf("definition %q: %w", def.ID, err)
	}
	return m, nil
}

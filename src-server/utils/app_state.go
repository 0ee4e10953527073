package utils

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"caldeck/src-server/collection"
	"caldeck/src-server/model"
	"caldeck/src-server/session"
	"caldeck/src-server/store"
	"caldeck/src-server/surface"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type AppState struct {
	Config *Config
	When   *when.Parser

	// nil unless STORE_BACKEND=sqlite
	RawDB *sql.DB
	BunDB *bun.DB

	EventStore      store.Store
	Grid            *surface.Grid
	EventCollection *collection.Collection
	EditSession     *session.EditSession

	MetricChans *Metric

	AppCloseSignalChan chan os.Signal

	gracefulShutdownChanMutex sync.Mutex
	gracefulShutdownChans     []*chan struct{}
}

func NewAppState() *AppState {
	as := &AppState{}

	as.AppCloseSignalChan = make(chan os.Signal, 1)
	as.MetricChans = NewMetric()

	// date parser for free-form draft input
	as.When = when.New(nil)
	as.When.Add(en.All...)
	as.When.Add(common.All...)

	// env
	as.Config = NewConfig()

	// event store
	switch as.Config.GetStoreBackend() {
	case StoreBackendSQLite:
		if err := os.MkdirAll(as.Config.GetDataDir(), 0o755); err != nil {
			slog.Error("can't create data directory", "error", err)
			os.Exit(1)
		}
		var err error
		as.RawDB, err = sql.Open(sqliteshim.ShimName, filepath.Join(as.Config.GetDataDir(), "events.db")+"?mode=rwc")
		if err != nil {
			slog.Error("cannot open sqlite database", "error", err)
			os.Exit(1)
		}
		as.RawDB.SetMaxIdleConns(8)
		as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
		if err := model.CreateSchema(as.BunDB); err != nil {
			slog.Error("can't create database schema", "error", err)
			os.Exit(1)
		}
		as.EventStore = store.NewSQLiteStore(as.BunDB)
	default:
		as.EventStore = store.NewJSONStore(as.Config.GetDataDir())
	}

	// grid surface is the system of record; the collection is a cache
	// resynced on every set change, which also persists to the store
	as.Grid = surface.NewGrid()
	as.EventCollection = collection.New(as.EventStore, as.MetricChans.StoreWrite)
	as.Grid.OnEventSetChanged(func(events []model.Event) {
		as.EventCollection.ReplaceAll(context.Background(), events)
	})

	// hydrate the grid from the previous run
	as.Grid.SetEvents(as.EventCollection.Hydrate(context.Background()))

	as.EditSession = session.New(as.Grid, as.EventCollection, as.Config.GetLocation(), as.When)

	return as
}

// CreateGracefulShutdownChan returns a channel closed on shutdown, for
// long-running goroutines to clean up after themselves.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	ch := make(chan struct{})
	as.gracefulShutdownChanMutex.Lock()
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	as.gracefulShutdownChanMutex.Unlock()
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownChanMutex.Lock()
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil
	as.gracefulShutdownChanMutex.Unlock()

	if as.RawDB != nil {
		if err := as.RawDB.Close(); err != nil {
			slog.Warn("can't close sqlite database", "error", err)
		}
	}
}

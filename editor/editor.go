package editor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tabletools/tablepad/config"
	"github.com/tabletools/tablepad/log"
	"github.com/tabletools/tablepad/storage"
	"github.com/tabletools/tablepad/table"
)

const DefaultSaveInterval = 500 * time.Millisecond

type EditorConfig struct {
	dataFile     string
	saveInterval time.Duration
	naming       config.NamingConvention
	supportedOps config.Operations
	logger       log.Logger
}

func (cfg EditorConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg EditorConfig) SupportedOperations() config.Operations {
	return cfg.supportedOps
}

func (cfg EditorConfig) SaveInterval() time.Duration {
	return cfg.saveInterval
}

func (cfg EditorConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *EditorConfig) WithNaming(naming config.NamingConvention) *EditorConfig {
	cfg.naming = naming
	return cfg
}

func (cfg *EditorConfig) WithSupportedOperations(supportedOps config.Operations) *EditorConfig {
	cfg.supportedOps = supportedOps
	return cfg
}

func (cfg *EditorConfig) WithSaveInterval(saveInterval time.Duration) *EditorConfig {
	cfg.saveInterval = saveInterval
	return cfg
}

func (cfg EditorConfig) NewEditor() (*Editor, error) {
	kv, err := storage.NewSQLiteStore(cfg.dataFile)
	if err != nil {
		return nil, err
	}
	return cfg.NewEditorWithKeyValue(kv), nil
}

// NewEditorWithKeyValue builds an editor over an already open slot
// store. The initial load happens here, before any UI runs, so the
// change notifications armed by MarkLoaded can only follow loaded
// state, never overwrite it.
func (cfg EditorConfig) NewEditorWithKeyValue(kv storage.KeyValue) *Editor {
	store := table.NewStore(cfg.naming)
	adapter := storage.NewAdapter(kv, store, cfg.logger)

	columns, rows := adapter.Load(context.Background())
	store.Replace(columns, rows)
	adapter.MarkLoaded()
	store.Subscribe(adapter.NotifyChanged)

	flusher := storage.NewFlusher(adapter, cfg.saveInterval, cfg.logger)
	go flusher.Start()

	return &Editor{
		store:   store,
		adapter: adapter,
		flusher: flusher,
		kv:      kv,
	}
}

type Editor struct {
	store   *table.Store
	adapter *storage.Adapter
	flusher *storage.Flusher
	kv      storage.KeyValue
}

func NewEditorConfig(dataFile string) (*EditorConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEditorConfigWithLogger(log.NewZapLogger(logger), dataFile), nil
}

func NewEditorConfigWithLogger(logger log.Logger, dataFile string) *EditorConfig {
	return &EditorConfig{
		dataFile:     dataFile,
		saveInterval: DefaultSaveInterval,
		naming:       config.NewDefaultNaming(),
		supportedOps: config.AllOperations,
		logger:       logger,
	}
}

func (e *Editor) Store() *table.Store {
	return e.store
}

// Close stops the background flusher, writes any pending snapshot and
// releases the slot store. Safe to call more than once.
func (e *Editor) Close() error {
	e.flusher.Stop()
	e.adapter.Flush(context.Background())
	return e.kv.Close()
}

package testutil

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tabletools/tablepad/config"
	"github.com/tabletools/tablepad/log"
	"github.com/tabletools/tablepad/table"
)

var fixtureDir string

// SetupDataFileFixture creates a scratch directory and returns a data
// file path inside it. The directory is removed by
// TearDownDataFileFixture.
func SetupDataFileFixture() string {
	dir, err := os.MkdirTemp("", "tablepad-test")
	PanicIfError(err)
	fixtureDir = dir
	return filepath.Join(dir, "data", "tablepad.db")
}

func TearDownDataFileFixture() {
	if fixtureDir != "" {
		PanicIfError(os.RemoveAll(fixtureDir))
		fixtureDir = ""
	}
}

// NewSeededStore returns a store holding first run state: the default
// columns and a single blank row.
func NewSeededStore() *table.Store {
	store := table.NewStore(config.NewDefaultNaming())
	columns := table.DefaultColumns()
	store.Replace(columns, []table.Row{table.NewRow(columns)})
	return store
}

func PanicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

// TestLogger is silent unless TEST_TRACE=ON is set in the environment.
func TestLogger() log.Logger {
	if strings.ToUpper(os.Getenv("TEST_TRACE")) == "ON" {
		logger, err := zap.NewDevelopment()
		PanicIfError(err)
		return log.NewZapLogger(logger)
	}

	return log.NewZapLogger(zap.NewNop())
}

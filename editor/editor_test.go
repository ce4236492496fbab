package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tabletools/tablepad/config"
	"github.com/tabletools/tablepad/internal/testutil"
	"github.com/tabletools/tablepad/storage"
)

func TestNewEditorConfigDefaults(t *testing.T) {
	cfg := NewEditorConfigWithLogger(testutil.TestLogger(), "tablepad.db")
	assert.Equal(t, DefaultSaveInterval, cfg.SaveInterval())
	assert.Equal(t, config.AllOperations, cfg.SupportedOperations())
	assert.NotNil(t, cfg.Naming())
	assert.NotNil(t, cfg.Logger())
}

func TestEditorConfigChaining(t *testing.T) {
	cfg := NewEditorConfigWithLogger(testutil.TestLogger(), "tablepad.db").
		WithNaming(config.NewSnakeNaming()).
		WithSupportedOperations(config.RowAdd | config.CellEdit).
		WithSaveInterval(DefaultSaveInterval * 2)

	assert.Equal(t, config.RowAdd|config.CellEdit, cfg.SupportedOperations())
	assert.Equal(t, DefaultSaveInterval*2, cfg.SaveInterval())
	assert.Equal(t, "user_id", cfg.Naming().ToColumnID("UserID"))
}

func TestNewEditorSeedsFirstRunState(t *testing.T) {
	cfg := NewEditorConfigWithLogger(testutil.TestLogger(), "tablepad.db")
	e := cfg.NewEditorWithKeyValue(storage.NewKeyValueMock())
	defer e.Close()

	columns, rows := e.Store().Snapshot()
	require.Len(t, columns, 3)
	assert.Equal(t, "key", columns[0].ID)
	assert.Equal(t, "value", columns[1].ID)
	assert.Equal(t, "notes", columns[2].ID)

	require.Len(t, rows, 1)
	assert.False(t, rows[0].Selected)
	assert.Equal(t, "", rows[0].Values["key"])
}

func TestNewEditorUsesConfiguredNaming(t *testing.T) {
	cfg := NewEditorConfigWithLogger(testutil.TestLogger(), "tablepad.db").
		WithNaming(config.NewSnakeNaming())
	e := cfg.NewEditorWithKeyValue(storage.NewKeyValueMock())
	defer e.Close()

	assert.Equal(t, "user_id", e.Store().AddColumn("UserID"))
}

func TestEditorCloseFlushesPendingEdits(t *testing.T) {
	kvMock := storage.NewKeyValueMock()
	cfg := NewEditorConfigWithLogger(testutil.TestLogger(), "tablepad.db")
	e := cfg.NewEditorWithKeyValue(kvMock)

	e.Store().AddColumn("City")
	require.NoError(t, e.Close())

	kvMock.AssertCalled(t, "Set", mock.Anything, storage.ColumnsKey, mock.Anything)
	kvMock.AssertCalled(t, "Set", mock.Anything, storage.RowsKey, mock.Anything)
	kvMock.AssertCalled(t, "Close")
}

func TestEditorCloseIsIdempotent(t *testing.T) {
	cfg := NewEditorConfigWithLogger(testutil.TestLogger(), "tablepad.db")
	e := cfg.NewEditorWithKeyValue(storage.NewKeyValueMock())

	assert.NoError(t, e.Close())
	assert.NoError(t, e.Close())
}

func TestNewEditorReopensPersistedState(t *testing.T) {
	path := testutil.SetupDataFileFixture()
	defer testutil.TearDownDataFileFixture()

	cfg := NewEditorConfigWithLogger(testutil.TestLogger(), path)

	first, err := cfg.NewEditor()
	require.NoError(t, err)

	rowID := first.Store().AddRow()
	first.Store().SetCellValue(rowID, "key", "host")
	first.Store().SetCellValue(rowID, "value", "db-1")
	require.NoError(t, first.Close())

	second, err := cfg.NewEditor()
	require.NoError(t, err)
	defer second.Close()

	_, rows := second.Store().Snapshot()
	require.Len(t, rows, 2)
	assert.Equal(t, "host", rows[1].Values["key"])
	assert.Equal(t, "db-1", rows[1].Values["value"])
}

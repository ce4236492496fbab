package cmd

import (
	"fmt"
	log2 "log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tabletools/tablepad/config"
	"github.com/tabletools/tablepad/editor"
	"github.com/tabletools/tablepad/log"
	"github.com/tabletools/tablepad/tui"
)

// Environment variables prefixed with "TABLEPAD_" can override settings e.g. "TABLEPAD_DATA_FILE"
const envVarPrefix = "tablepad"

var cfgFile string
var logger log.Logger
var cfg *editor.EditorConfig

var rootCmd = &cobra.Command{
	Use:   os.Args[0] + " [OPTIONS]",
	Short: "Edit a table interactively and render it as aligned pipe-delimited text",
	Run: func(cmd *cobra.Command, args []string) {
		settings := loadSettings()

		// The terminal belongs to the UI from here on; everything logs
		// to the file instead.
		fileLogger, err := log.NewFileLogger(settings.LogFile, settings.LogLevel)
		if err != nil {
			logger.Fatal("unable to open log file",
				"file", settings.LogFile,
				"error", err)
		}
		defer fileLogger.Sync()

		e := createEditor(settings, fileLogger)

		program := tea.NewProgram(tui.NewModel(e.Store(), cfg, settings.CodeBlock), tea.WithAltScreen())
		_, runErr := program.Run()

		if err := e.Close(); err != nil {
			fileLogger.Error("unable to close editor cleanly", "error", err)
		}
		if runErr != nil {
			logger.Fatal("terminal program failed", "error", runErr)
		}
	},
}

// Execute runs the editor or one of its subcommands
func Execute() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log2.Fatalf("unable to initialize logger: %v", err)
	}

	logger = log.NewZapLogger(zapLogger)

	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "config file")
	flags.String("data-file", defaultDataFile(), "table database location")
	flags.Bool("code-block", false, "start with code block fencing enabled")
	flags.String("naming", "default", "column id naming convention. options: default,snake")
	flags.StringSlice("operations", nil, "list of permitted edit operations, all when empty. options: ColumnAdd,ColumnDelete,ColumnRename,RowAdd,RowDelete,CellEdit")
	flags.Duration("save-interval", editor.DefaultSaveInterval, "interval used to coalesce writes to the data file")
	flags.String("log-file", defaultLogFile(), "log destination")
	flags.String("log-level", "info", "log level. options: debug,info,warn,error")

	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "config" {
			viper.BindPFlag(flag.Name, flags.Lookup(flag.Name))
		}
	})

	cobra.OnInitialize(initialize)

	viper.SetEnvPrefix(envVarPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadSettings() config.Settings {
	settings, err := config.DecodeSettings(viper.AllSettings())
	if err != nil {
		logger.Fatal("invalid settings", "error", err)
	}
	return settings
}

func createEditor(settings config.Settings, editorLogger log.Logger) *editor.Editor {
	naming, err := config.NamingFor(settings.Naming)
	if err != nil {
		logger.Fatal("invalid naming convention",
			"naming", settings.Naming,
			"error", err)
	}

	ops, err := config.Ops(settings.Operations...)
	if err != nil {
		logger.Fatal("invalid supported operation",
			"operations", settings.Operations,
			"error", err)
	}

	saveInterval := settings.SaveInterval
	if saveInterval <= 0 {
		saveInterval = editor.DefaultSaveInterval
	}

	cfg = editor.NewEditorConfigWithLogger(editorLogger, settings.DataFile).
		WithNaming(naming).
		WithSupportedOperations(ops).
		WithSaveInterval(saveInterval)

	e, err := cfg.NewEditor()
	if err != nil {
		logger.Fatal("unable to open data file",
			"file", settings.DataFile,
			"error", err)
	}
	return e
}

func initialize() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err == nil {
			logger.Info("using config file",
				"file", viper.ConfigFileUsed())
		}
	}
}

func defaultDataFile() string {
	return filepath.Join(appDir(), "tablepad.db")
}

func defaultLogFile() string {
	return filepath.Join(appDir(), "tablepad.log")
}

func appDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(configDir, "tablepad")
}

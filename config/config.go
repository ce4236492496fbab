package config

import (
	"time"

	"github.com/tabletools/tablepad/log"
)

// Config is the read surface the editor components are wired with.
type Config interface {
	Naming() NamingConvention
	SupportedOperations() Operations
	SaveInterval() time.Duration
	Logger() log.Logger
}

package commands

import "github.com/doeshing/vox-go/internal/domain"

const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = domain.DefaultHistoryLimit
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = domain.DefaultHistorySearchLimit
	// TimestampFormat is the standard timestamp format
	TimestampFormat = domain.TimestampFormat
)

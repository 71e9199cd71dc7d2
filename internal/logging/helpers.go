package logging

import (
	"maps"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns logger unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}

// Err flattens err into a loggable value, keeping nil as nil.
func Err(err error) any {
	if err == nil {
		return nil
	}
	return err.Error()
}

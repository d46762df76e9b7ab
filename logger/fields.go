package logger

import (
	"time"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across glbind.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldStage     = "stage"
	FieldPath      = "path"
	FieldAPI       = "api"
	FieldVersion   = "version"
	FieldProfile   = "profile"

	// Registry statistics
	FieldEnums    = "enums"
	FieldCommands = "commands"
	FieldGroups   = "groups"
	FieldAliases  = "aliases"

	FieldBytes      = "bytes"
	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)

// Duration returns a zap field holding d in milliseconds
func Duration(d time.Duration) zap.Field {
	return zap.Int64(FieldDurationMS, d.Milliseconds())
}

// Err returns a zap field for an error under the standard key
func Err(err error) zap.Field {
	return zap.NamedError(FieldError, err)
}

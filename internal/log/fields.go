package log

import "expensetracker/internal/core"

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldCommand   = "command"
	FieldSuccess   = "success"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldName      = "record_name"
	FieldDate      = "record_date"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldRows      = "rows"
	FieldSelected  = "selected"
	FieldFilter    = "filter"
	FieldPath      = "path"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentTracker = "tracker"
	ComponentExport  = "export"
	ComponentWorker  = "worker"
	ComponentUI      = "ui"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAppend  = "append"
	OpLoad    = "load"
	OpRewrite = "rewrite"
	OpRemove  = "remove"
	OpExport  = "export"
	OpSync    = "sync"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	f[FieldSuccess] = err == nil
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithCommand adds command field
func (f LogFields) WithCommand(cmd string) LogFields {
	f[FieldCommand] = cmd
	return f
}

// WithRecord adds record-related fields
func (f LogFields) WithRecord(r core.Record) LogFields {
	f[FieldDate] = r.Date.String()
	f[FieldName] = r.Name
	f[FieldAmount] = core.StorageText(r.Amount)
	f[FieldCategory] = string(r.Category)
	return f
}

// WithRows adds the row count of the table after a command
func (f LogFields) WithRows(n int) LogFields {
	f[FieldRows] = n
	return f
}

// With adds an arbitrary field
func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}

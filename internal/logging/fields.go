package logging

const (
	// FieldComponent names the package or subsystem emitting the record.
	FieldComponent = "component"
	// FieldRunID identifies an archived run.
	FieldRunID = "run_id"
	// FieldStage names the pipeline stage (read, tokenize, rank, export, archive).
	FieldStage = "stage"
	// FieldEventType is a stable machine-readable event name.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSessionID identifies one CLI invocation.
	FieldSessionID = "session_id"
)

package ir

// Version constants for persisted records.
const (
	// SchemaVersion is the record schema version stored alongside attempts.
	SchemaVersion = "1"

	// EngineVersion is the ordermode engine version.
	EngineVersion = "0.1.0"
)

package domain

import "context"

// EventExtractor produces a structured medication timeline from the raw notes
// on a patient profile. Implementations call an external NER service; the
// safety engine consumes the output as-is and treats any normalization gap
// (non-title-cased names, loose dates) as the extractor's defect.
type EventExtractor interface {
	Extract(ctx context.Context, patient *PatientProfile) (*ExtractionResult, error)
}

// ConfigManager provides access to application configuration
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetDatabaseConfig() *DatabaseConfig
	GetLoggingConfig() *LoggingConfig
	Validate() error
}

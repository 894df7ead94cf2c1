package models

// IntegrationConfig holds per external tool sync and auth settings.
// Opaque to the core pipeline: only Enabled and SyncDirection are ever
// consulted when a job's compatibility is checked.
type IntegrationConfig struct {
	Name               string            `json:"name"`
	Enabled            bool              `json:"enabled"`
	Version            string            `json:"version,omitempty"`
	APIEndpoint        string            `json:"api_endpoint,omitempty"`
	Auth               IntegrationAuth   `json:"authentication"`
	SyncDirection      string            `json:"sync_direction"` // export_only | import_only | bidirectional
	ConflictResolution string            `json:"conflict_resolution"`
	AutoSync           bool              `json:"auto_sync"`
	SyncIntervalMin    int               `json:"sync_interval"`
	ExportDefaults     map[string]string `json:"export_defaults,omitempty"`
}

// IntegrationAuth is an opaque credential descriptor
type IntegrationAuth struct {
	Type        string            `json:"type"` // api_key | oauth | bearer | basic | service_account
	Credentials map[string]string `json:"credentials,omitempty"`
	Scopes      []string          `json:"scopes,omitempty"`
}

package constants

const (
	// Environments. Anything else is treated as development.
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Pagination bounds for list endpoints.
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 200

	HeaderAuthorization = "Authorization"

	// Gin context keys set by the auth middleware.
	ContextKeyOperatorID = "operator_id"
	ContextKeyRoles      = "roles"

	// Table names, kept next to each other so the persistence models and
	// migration scripts stay in agreement.
	TableMachines           = "machines"
	TableShiftRecords       = "shift_records"
	TableProductionDeltas   = "production_deltas"
	TableQualityGateConfigs = "quality_gate_configs"
	TableQualityTestRecords = "quality_test_records"
	TableProductionAlerts   = "production_alerts"
)

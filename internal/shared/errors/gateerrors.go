package errors

// ErrProductionBlocked is raised when a machine cannot start production
// because a pending quality gate has blockProduction set.
func ErrProductionBlocked(machineSID string, gateName string) *AppError {
	return NewBusinessRuleError(
		"production blocked by pending quality gate",
		"machine "+machineSID+" requires quality test: "+gateName,
	)
}

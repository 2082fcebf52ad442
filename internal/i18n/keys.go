// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"
	KeyAccessDenied     = "auth.access_denied"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// Discovery
	KeyNearbyInvalidQuery = "nearby.invalid_query"
	KeyScoresRecomputed   = "scores.recomputed"
	KeyScoresPartial      = "scores.partial"
	KeyPopularityUpdated  = "scores.popularity_updated"

	// Resources
	KeyEstablishmentNotFound = "establishment.not_found"
	KeyEstablishmentUpdated  = "establishment.location_updated"
	KeyItemNotFound          = "item.not_found"
	KeyCrowdNotFound         = "crowd.not_found"
	KeyCrowdRecorded         = "crowd.recorded"
	KeyEventRecorded         = "event.recorded"

	// System
	KeyRateLimited   = "system.rate_limited"
	KeyInternalError = "system.internal_error"
	KeyNotFound      = "system.not_found"
)

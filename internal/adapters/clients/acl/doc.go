// Package acl is the anti-corruption layer between upstream quote providers
// and the domain. Upstream DTOs stay unexported here, responses are checked
// before they become domain.QuoteDraft values, and transport or status
// failures are mapped to domain errors:
//
//   - 404 → [domain.ErrNotFound]
//   - 400/422 → [domain.ErrValidation]
//   - 401/403/429/5xx and network errors → [domain.ErrUnavailable]
//
// Client-level errors ([clients.ErrCircuitOpen], [clients.ErrMaxRetriesExceeded])
// also become [domain.ErrUnavailable].
package acl

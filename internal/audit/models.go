package audit

import "time"

// Category separates operator actions from policy refusals.
type Category string

const (
	CategoryOperations Category = "operations"
	CategorySecurity   Category = "security"
)

// Action names an audited operation.
type Action string

const (
	ActionCacheCleared      Action = "cpf_cache_cleared"
	ActionFixturesGenerated Action = "cpf_fixtures_generated"
	ActionFixturesDenied    Action = "cpf_fixtures_denied"
)

// Event is emitted from services to capture operator actions. CPFs never
// appear in events.
type Event struct {
	Category  Category
	Action    Action
	Timestamp time.Time
	RequestID string
	ClientIP  string
	Decision  string
	Reason    string
	Count     int
}

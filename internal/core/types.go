package core

import (
	"time"
)

// Show is a recurring program whose schedule pattern and timezone are
// supplied by the external show-management configuration. The engine never
// persists shows itself.
type Show struct {
	Name     string
	Pattern  string
	Timezone string
}

// Airing is one show's computed slot in the upcoming lineup.
type Airing struct {
	Show        string
	Pattern     string
	Description string
	// AirsAt is nil when the pattern is unparseable or has no next
	// occurrence (wildcard clock, exhausted day constraint).
	AirsAt *time.Time
	// When is the relative label for AirsAt ("Tomorrow", "in 3 days");
	// empty when AirsAt is nil.
	When string
}

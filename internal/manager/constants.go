package manager

import "time"

// SchemaTTL defines the time-to-live for registered schema sessions.
// Sessions are cheap to re-register, so expiry just reclaims memory from
// abandoned clients.
const SchemaTTL = time.Hour

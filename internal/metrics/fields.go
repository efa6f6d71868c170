package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrSource   = "source"
	AttrYear     = "year"
	AttrFallback = "fallback"
	AttrCorrect  = "correct"
	AttrRestored = "restored"
)

package models

// Status classifies a feeder, outage or notification.
type Status string

const (
	StatusOnline      Status = "online"
	StatusOutage      Status = "outage"
	StatusMaintenance Status = "maintenance"
	StatusWarning     Status = "warning"
)

// Map colours for feeder rendering.
const (
	ColorOnline  = "#22c55e"
	ColorOutage  = "#ef4444"
	ColorAmber   = "#f59e0b"
	ColorUnknown = "#9ca3af"
)

// AllStatuses lists statuses in display order.
var AllStatuses = []Status{StatusOnline, StatusOutage, StatusMaintenance, StatusWarning}

// ParseStatus converts a string to Status.
// Returns false for anything outside the closed set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOnline, StatusOutage, StatusMaintenance, StatusWarning:
		return Status(s), true
	default:
		return Status(s), false
	}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Label returns the human readable name shown on badges.
func (s Status) Label() string {
	switch s {
	case StatusOnline:
		return "Online"
	case StatusOutage:
		return "Outage"
	case StatusMaintenance:
		return "Maintenance"
	case StatusWarning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// Color returns the stroke/fill colour used on the feeder map.
func (s Status) Color() string {
	switch s {
	case StatusOnline:
		return ColorOnline
	case StatusOutage:
		return ColorOutage
	case StatusMaintenance, StatusWarning:
		return ColorAmber
	default:
		return ColorUnknown
	}
}

// Tone returns the CSS tone name (success, danger, warning) for badges.
func (s Status) Tone() string {
	switch s {
	case StatusOnline:
		return "success"
	case StatusOutage:
		return "danger"
	default:
		return "warning"
	}
}

// Priority is the urgency of a notification.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort weight: high=3, medium=2, low=1, unknown=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Label returns the capitalized priority name.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return ""
	}
}

// Tone returns the CSS tone name for priority badges.
func (p Priority) Tone() string {
	switch p {
	case PriorityHigh:
		return "danger"
	case PriorityMedium:
		return "warning"
	case PriorityLow:
		return "success"
	default:
		return ""
	}
}

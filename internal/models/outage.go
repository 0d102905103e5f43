package models

import (
	"time"
)

// ResolutionLead is how far ahead the demo "update time" action sets the
// estimated resolution.
const ResolutionLead = 3 * time.Hour

// Outage is a single outage (or feeder status) record shown on the dashboard.
type Outage struct {
	ID                  string     `json:"id" yaml:"id" validate:"required"`
	Area                string     `json:"area" yaml:"area" validate:"required"`
	Feeder              string     `json:"feeder" yaml:"feeder" validate:"required"`
	TCCenter            string     `json:"tc_center" yaml:"tc_center"`
	AffectedUsers       int        `json:"affected_users" yaml:"affected_users" validate:"gte=0"`
	Status              Status     `json:"status" yaml:"status" validate:"required,oneof=online outage maintenance warning"`
	StartTime           time.Time  `json:"start_time" yaml:"start_time" validate:"required"`
	EstimatedResolution *time.Time `json:"estimated_resolution,omitempty" yaml:"estimated_resolution,omitempty"`
	Location            string     `json:"location" yaml:"location"`
	Reason              string     `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Clone returns a deep copy so callers can modify it without touching shared state.
func (o *Outage) Clone() *Outage {
	c := *o
	if o.EstimatedResolution != nil {
		t := *o.EstimatedResolution
		c.EstimatedResolution = &t
	}
	return &c
}

// IsActive returns true if the record counts toward affected users.
func (o *Outage) IsActive() bool {
	return o.Status != StatusOnline
}

// CanUpdateTime reports whether the "Update Time" action is offered.
func (o *Outage) CanUpdateTime() bool {
	return o.Status == StatusOutage && o.EstimatedResolution == nil
}

// WithResolution returns a copy with the estimated resolution set to
// at + ResolutionLead.
func (o *Outage) WithResolution(at time.Time) *Outage {
	c := o.Clone()
	t := at.Add(ResolutionLead)
	c.EstimatedResolution = &t
	return c
}

// ResolutionBeforeStart reports the unvalidated case where the estimated
// resolution precedes the start time.
func (o *Outage) ResolutionBeforeStart() bool {
	return o.EstimatedResolution != nil && o.EstimatedResolution.Before(o.StartTime)
}

// OutageSummary holds the dashboard counters.
type OutageSummary struct {
	AffectedUsers      int `json:"affected_users"`
	Outages            int `json:"outages"`
	Maintenance        int `json:"maintenance"`
	Online             int `json:"online"`
	TotalNotifications int `json:"total_notifications"`
	OutageAlerts       int `json:"outage_alerts"`
	RestorationUpdates int `json:"restoration_updates"`
}

// Summarize computes dashboard counters for a list of outages.
func Summarize(outages []*Outage) OutageSummary {
	var s OutageSummary
	for _, o := range outages {
		if o.IsActive() {
			s.AffectedUsers += o.AffectedUsers
		}
		switch o.Status {
		case StatusOutage:
			s.Outages++
		case StatusMaintenance:
			s.Maintenance++
		case StatusOnline:
			s.Online++
		}
	}
	s.TotalNotifications = len(outages) * 2
	s.OutageAlerts = len(outages)
	s.RestorationUpdates = len(outages)
	return s
}

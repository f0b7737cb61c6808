package domain

import (
	"slices"
	"time"
)

type DeploymentStatus string

const (
	DeploymentStatusUnknown     DeploymentStatus = ""
	DeploymentStatusNotDeployed DeploymentStatus = "not_deployed"
	DeploymentStatusDeploying   DeploymentStatus = "deploying"
	DeploymentStatusDeployed    DeploymentStatus = "deployed"
	DeploymentStatusStopping    DeploymentStatus = "stopping"
	DeploymentStatusStopped     DeploymentStatus = "stopped"
	DeploymentStatusEvicted     DeploymentStatus = "evicted"
)

func (s DeploymentStatus) Label() string {
	switch s {
	case DeploymentStatusUnknown:
		return "unknown"
	case DeploymentStatusNotDeployed:
		return "not deployed"
	default:
		return string(s)
	}
}

func (s DeploymentStatus) IsTransitioning() bool {
	return s == DeploymentStatusDeploying || s == DeploymentStatusStopping
}

func (s DeploymentStatus) CanStart() bool {
	return s == DeploymentStatusNotDeployed || s == DeploymentStatusStopped
}

func (s DeploymentStatus) CanStop() bool {
	return s == DeploymentStatusDeployed
}

type DeploymentSnapshot struct {
	Status     DeploymentStatus
	ObservedAt time.Time
}

// DeriveStatus folds an open eviction window into the tracker status. Only a
// deployed or stopped agent can be evicted.
func DeriveStatus(authoritative DeploymentStatus, record *StakingRecord, now time.Time) DeploymentStatus {
	if record == nil || !record.EvictedAt(now) {
		return authoritative
	}
	if authoritative == DeploymentStatusDeployed || authoritative == DeploymentStatusStopped {
		return DeploymentStatusEvicted
	}

	return authoritative
}

// overrideLag lists tracker reports that may still trail an override by one
// tick after polling resumes.
var overrideLag = map[DeploymentStatus][]DeploymentStatus{
	DeploymentStatusDeploying: {DeploymentStatusNotDeployed, DeploymentStatusStopped},
	DeploymentStatusDeployed:  {DeploymentStatusDeploying},
	DeploymentStatusStopping:  {DeploymentStatusDeployed},
	DeploymentStatusStopped:   {DeploymentStatusStopping},
}

// StatusSlot pairs the tracker-reported status with an optional locally
// asserted override. The zero value has no override and unknown status.
type StatusSlot struct {
	Authoritative DeploymentStatus
	override      DeploymentStatus
	held          bool
}

func (s *StatusSlot) SetOverride(status DeploymentStatus) {
	s.override = status
	s.held = false
}

func (s *StatusSlot) ClearOverride() {
	s.override = DeploymentStatusUnknown
	s.held = false
}

func (s StatusSlot) Override() (DeploymentStatus, bool) {
	return s.override, s.override != DeploymentStatusUnknown
}

// Observe records a tracker report. Any known report drops the override,
// except a single lagging transitional report, which is held for one tick.
func (s *StatusSlot) Observe(authoritative DeploymentStatus) {
	s.Authoritative = authoritative
	if s.override == DeploymentStatusUnknown || authoritative == DeploymentStatusUnknown {
		return
	}
	if !s.held && slices.Contains(overrideLag[s.override], authoritative) {
		s.held = true
		return
	}

	s.override = DeploymentStatusUnknown
	s.held = false
}

func (s StatusSlot) Effective() DeploymentStatus {
	if s.override != DeploymentStatusUnknown {
		return s.override
	}

	return s.Authoritative
}

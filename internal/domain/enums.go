package domain

type TrackingState string

const (
	TrackingIdle   TrackingState = "idle"
	TrackingActive TrackingState = "tracking"
)

// ProgressLabel is the coarse status shown next to the summary figures.
type ProgressLabel string

const (
	ProgressReady  ProgressLabel = "Ready"
	ProgressActive ProgressLabel = "Active"
)

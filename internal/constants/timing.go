package constants

import "time"

// Requeue intervals used by controllers.
const (
	// RequeueDetection refreshes peer-operator detection without new events.
	RequeueDetection = 5 * time.Minute
)

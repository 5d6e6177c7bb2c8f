package model

import "time"

// TrackedEvent is an analytics event sent to the service and optionally journaled
type TrackedEvent struct {
	ID        string                 `json:"id" bson:"_id"`
	Name      string                 `json:"event" bson:"event"`
	Data      map[string]interface{} `json:"data" bson:"data"`
	PlayerID  string                 `json:"player,omitempty" bson:"player,omitempty"`
	Delivered bool                   `json:"delivered" bson:"delivered"`
	Timestamp time.Time              `json:"timestamp" bson:"timestamp"`
}

// Package v1 defines the data types shared across greet layers.
package v1

import "time"

// GreetingRecord is one greeting stored in the history bucket.
type GreetingRecord struct {
	Seq       uint64    `json:"seq"`
	Name      string    `json:"name"`
	Greeting  string    `json:"greeting"`
	Timestamp time.Time `json:"ts"`
}

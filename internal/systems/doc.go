// Package systems holds the per-tick world passes: spatial indexing,
// visibility and monster behavior. Each pass is a synchronous function over
// the map and entity store; the turn coordinator decides when each one runs.
package systems

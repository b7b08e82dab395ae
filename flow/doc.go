// Package flow
// Author: momentics <momentics@gmail.com>
//
// Dataflow edges for views: a lock-free bounded ring for handing views
// between producer and consumer goroutines, and an in-order accumulator
// that serves contiguous byte spans on a consumer port.
package flow

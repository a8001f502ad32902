// Package event provides the publish/subscribe hub that distributes
// lifecycle and metrics events to consumers such as the terminal display,
// log viewers, and metrics collectors.
//
// Delivery is ordered by priority, then by arrival. Events above the urgent
// threshold are dispatched out of band, ahead of any queued normal-priority
// events. Every event is buffered per type so late subscribers can replay
// history they missed.
package event

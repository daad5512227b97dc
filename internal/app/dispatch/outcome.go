package dispatch

import "time"

// Outcome is the delivery decision for one inbound message: either the
// message is acknowledged (handled, remove from the queue) or it is held
// back for redelivery after a delay. The decision is deliberately decoupled
// from any transport API.
type Outcome struct {
	ack   bool
	delay time.Duration
}

func Acknowledge() Outcome {
	return Outcome{ack: true}
}

func RedeliverAfter(delay time.Duration) Outcome {
	return Outcome{delay: delay}
}

func (o Outcome) Acknowledged() bool {
	return o.ack
}

// Delay before the message should be handled again. Zero when acknowledged.
func (o Outcome) Delay() time.Duration {
	return o.delay
}

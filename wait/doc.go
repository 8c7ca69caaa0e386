// Package wait provides polling based coordination primitives, from a
// cancellable delay up to a lockable resource with a named owner.
//
// Every wait evaluates its condition immediately and then once per poll
// interval. There is no backoff and no attempt limit; a wait ends when the
// condition holds or when its context is done.
//
// The claim variants evaluate the condition and perform the claim inside one
// critical section, so two goroutines polling the same state can never both
// observe it free and both claim it.
package wait

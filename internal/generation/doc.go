// Package generation runs the simulated music generation flow.
//
// A [Controller] owns the loading state: [Controller.Generate] is ignored while a request is in flight, otherwise it
// waits out the configured latency on the scheduler and then asks a [Generator] for a [Track].
//
// Generators:
//   - [Simulated] : always succeeds, building a track from the request
//   - [Failing] : always fails, for exercising the error notice
//   - [RateLimited] : wraps another generator with a request quota
//
// Any failure surfaces as a [*GenerationError]: the loading state is reset, the error is logged and a notice is shown.
package generation

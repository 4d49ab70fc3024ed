// Package jobs implements background job processing for the board API.
//
// The jobs package contains scheduled tasks that run independently of HTTP
// request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - PinExpirySweeper: clears expired pin flags from stored listings
//
// # Lifecycle
//
// Jobs follow a Start/Stop pattern and are wired in main:
//
//	sweeper := jobs.NewPinExpirySweeper(listingRepo, cfg.Jobs.PinSweepInterval)
//	sweeper.Start()
//	defer sweeper.Stop()
//
// # Error Handling
//
// Jobs log errors but don't crash the application; a failed sweep is retried
// on the next tick.
package jobs

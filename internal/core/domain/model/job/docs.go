// Package job contains the MultiCleanerJob aggregate and its state machine.
//
// Status is never assigned directly. It is derived from the confirmed cleaner
// count and the required cleaner count every time ApplyConfirmedCount runs:
//
//	open ──> partially_filled ──> filled ──> completed
//	  │             │               │
//	  └─────────────┴───────────────┴──────> cancelled
//
// The confirmed count itself is a projection of the job's active completion
// rows. Callers recompute it inside the same transaction as the mutation that
// changed those rows and persist the job with an optimistic version check.
package job

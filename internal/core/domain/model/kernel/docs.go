// Package kernel provides the shared identifier value object used by every
// aggregate of the job orchestration engine: jobs, room assignments, cleaner
// completions, offers, join requests, appointments, homes and users.
//
// UUID is immutable and safe for concurrent use. Its zero value is invalid and
// is rejected by Validate, so aggregates can detect identifiers that were never set.
package kernel

// Package home models the physical home a cleaning job is performed in.
//
// A Home carries the bed/bath/square-footage configuration the room splitter
// turns into room assignments, and the homeowner's preferred cleaners that the
// approval workflow uses to decide whether a join request is auto-approved.
package home

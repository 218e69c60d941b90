// Package services holds the pure domain services of the cleaning orchestration engine.
//
// The package includes:
//   - RoomSplitter: builds a home's room list and divides it into balanced groups
//   - HomeClassifier: decides whether a home is large, edge-sized or solo-cleanable
//
// Neither service performs I/O; both are safe to share between goroutines.
package services

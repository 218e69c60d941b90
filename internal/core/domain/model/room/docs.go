// Package room models the physical room units a job is split into.
//
// The set of rooms for a job is fixed when the job is created. Afterwards only
// the owning cleaner, the cleaning status and the earnings share change. The
// owning cleaner is claimed through a conditional store update (see
// ports.RoomRepository.Claim), never by mutating an Assignment in memory and
// writing it back, so two cleaners racing for the same room cannot both win.
package room

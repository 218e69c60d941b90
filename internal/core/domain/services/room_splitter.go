package services

import (
	"fmt"
	"math"
	"sort"

	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
)

const (
	defaultSqftPerRoom   = 150
	defaultMinMultiplier = 0.5
	defaultMaxMultiplier = 2.0
)

// RoomSplitter turns a home into room units and divides them between cleaners.
//
// Room list rules:
//   - one bedroom per bed, the first labelled "Master Bedroom"
//   - one bathroom per full bath, the first labelled "Master Bathroom"
//   - a half bathroom when baths has a .5 part, at half the bathroom effort
//   - a kitchen and a living room always
//   - a dining room when the home has three or more bedrooms
//
// Effort is scaled by square footage: each room's base minutes are multiplied by
// (sqft / rooms) / 150, clamped to [0.5, 2]. Homes with unknown square footage are not scaled.
//
// Splitting is longest-processing-time-first: rooms sorted by effort descending,
// each one given to the currently lightest group. Ties go to the lower group index
// and equal-effort rooms keep their list order, so the result is deterministic.
//
// Example usage:
//
//	splitter := services.NewRoomSplitter()
//	groups := splitter.SplitHome(h, 2)
//	for i, g := range groups {
//	    fmt.Println(i, room.TotalMinutes(g))
//	}
type RoomSplitter struct {
	sqftPerRoom   float64
	minMultiplier float64
	maxMultiplier float64
}

type RoomSplitterOption func(*RoomSplitter)

// WithSqftScaling overrides the square footage that counts as one "normal" room and
// the bounds of the resulting multiplier.
func WithSqftScaling(sqftPerRoom, minMultiplier, maxMultiplier float64) RoomSplitterOption {
	return func(s *RoomSplitter) {
		if sqftPerRoom > 0 {
			s.sqftPerRoom = sqftPerRoom
		}
		if minMultiplier > 0 && maxMultiplier >= minMultiplier {
			s.minMultiplier = minMultiplier
			s.maxMultiplier = maxMultiplier
		}
	}
}

// WithoutSqftScaling uses base minutes regardless of square footage.
func WithoutSqftScaling() RoomSplitterOption {
	return func(s *RoomSplitter) {
		s.sqftPerRoom = 0
	}
}

func NewRoomSplitter(opts ...RoomSplitterOption) RoomSplitter {
	s := RoomSplitter{
		sqftPerRoom:   defaultSqftPerRoom,
		minMultiplier: defaultMinMultiplier,
		maxMultiplier: defaultMaxMultiplier,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// GenerateRoomList returns the rooms of a home in a fixed order.
func (s RoomSplitter) GenerateRoomList(h *home.Home) []room.Unit {
	type base struct {
		t       room.Type
		number  int
		label   string
		minutes int
	}

	var rooms []base
	for i := 1; i <= h.Beds(); i++ {
		rooms = append(rooms, base{room.Bedroom, i, numbered("Bedroom", "Master Bedroom", i), room.Bedroom.BaseMinutes()})
	}
	fullBaths := h.FullBaths()
	for i := 1; i <= fullBaths; i++ {
		rooms = append(rooms, base{room.Bathroom, i, numbered("Bathroom", "Master Bathroom", i), room.Bathroom.BaseMinutes()})
	}
	if h.HasHalfBath() {
		rooms = append(rooms, base{room.Bathroom, fullBaths + 1, "Half Bathroom", room.HalfBathMinutes()})
	}
	rooms = append(rooms,
		base{room.Kitchen, 1, "Kitchen", room.Kitchen.BaseMinutes()},
		base{room.LivingRoom, 1, "Living Room", room.LivingRoom.BaseMinutes()},
	)
	if h.Beds() >= 3 {
		rooms = append(rooms, base{room.DiningRoom, 1, "Dining Room", room.DiningRoom.BaseMinutes()})
	}

	multiplier := s.multiplier(h.Sqft(), len(rooms))
	units := make([]room.Unit, 0, len(rooms))
	for _, r := range rooms {
		units = append(units, room.Unit{
			Type:             r.t,
			Number:           r.number,
			Label:            r.label,
			EstimatedMinutes: int(math.Round(float64(r.minutes) * multiplier)),
		})
	}
	return units
}

// SplitHome generates the room list and splits it into cleanerCount groups.
func (s RoomSplitter) SplitHome(h *home.Home, cleanerCount int) [][]room.Unit {
	return s.SplitRooms(s.GenerateRoomList(h), cleanerCount)
}

// SplitRooms divides units into cleanerCount balanced groups. A count of one or less yields a single group.
func (s RoomSplitter) SplitRooms(units []room.Unit, cleanerCount int) [][]room.Unit {
	return pack(units, func(u room.Unit) int { return u.EstimatedMinutes }, make([]int, max(cleanerCount, 1)))
}

// PickRoomsForSlot chooses the rooms a new cleaner takes when they did not pick any:
// the unassigned rooms are packed into the open slots and the heaviest group is returned.
func (s RoomSplitter) PickRoomsForSlot(unassigned []*room.Assignment, openSlots int) []*room.Assignment {
	if len(unassigned) == 0 {
		return nil
	}
	groups := pack(unassigned, assignmentMinutes, make([]int, max(openSlots, 1)))

	heaviest, heaviestMinutes := 0, -1
	for i, g := range groups {
		if m := sumMinutes(g); m > heaviestMinutes {
			heaviest, heaviestMinutes = i, m
		}
	}
	return groups[heaviest]
}

// CleanerLoad is a cleaner's current effort on a job, in minutes.
type CleanerLoad struct {
	CleanerID kernel.UUID
	Minutes   int
}

// Allocation is the set of extra rooms handed to one cleaner by DistributeAssignments.
type Allocation struct {
	CleanerID kernel.UUID
	Rooms     []*room.Assignment
}

// DistributeAssignments rebalances unassigned rooms among the remaining cleaners,
// taking the rooms they already hold into account. A single cleaner receives everything.
func (s RoomSplitter) DistributeAssignments(unassigned []*room.Assignment, cleaners []CleanerLoad) []Allocation {
	if len(cleaners) == 0 {
		return nil
	}
	loads := make([]int, len(cleaners))
	for i, c := range cleaners {
		loads[i] = c.Minutes
	}
	groups := pack(unassigned, assignmentMinutes, loads)

	out := make([]Allocation, len(cleaners))
	for i, c := range cleaners {
		out[i] = Allocation{CleanerID: c.CleanerID, Rooms: groups[i]}
	}
	return out
}

func (s RoomSplitter) multiplier(sqft, roomCount int) float64 {
	if s.sqftPerRoom <= 0 || sqft <= 0 || roomCount == 0 {
		return 1
	}
	m := float64(sqft) / float64(roomCount) / s.sqftPerRoom
	return math.Min(math.Max(m, s.minMultiplier), s.maxMultiplier)
}

// pack is greedy LPT bin packing over len(loads) groups seeded with the given loads.
func pack[T any](items []T, weight func(T) int, loads []int) [][]T {
	sorted := append([]T(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return weight(sorted[i]) > weight(sorted[j])
	})

	loads = append([]int(nil), loads...)
	groups := make([][]T, len(loads))
	for _, item := range sorted {
		lightest := 0
		for g := 1; g < len(loads); g++ {
			if loads[g] < loads[lightest] {
				lightest = g
			}
		}
		groups[lightest] = append(groups[lightest], item)
		loads[lightest] += weight(item)
	}
	return groups
}

func assignmentMinutes(a *room.Assignment) int { return a.EstimatedMinutes() }

func sumMinutes(rooms []*room.Assignment) int {
	total := 0
	for _, r := range rooms {
		total += r.EstimatedMinutes()
	}
	return total
}

func numbered(kind, first string, n int) string {
	if n == 1 {
		return first
	}
	return fmt.Sprintf("%s %d", kind, n)
}

package services

import (
	"multicleaner/internal/core/domain/model/home"
)

// Classification describes how many cleaners a home needs.
type Classification struct {
	IsLargeHome            bool
	IsEdgeLargeHome        bool
	IsSoloAllowed          bool
	IsMultiCleanerRequired bool
}

// HomeClassifier decides whether a home is large, and whether it sits right at the
// threshold ("edge") where a single cleaner may still do the job with a warning.
//
// A home is large when beds or baths meet the threshold, and an edge large home when
// it is large and neither dimension exceeds the threshold. A home with 5 beds and 2 baths
// is therefore large but not edge.
type HomeClassifier struct {
	bedsThreshold  int
	bathsThreshold float64
}

func NewHomeClassifier(bedsThreshold int, bathsThreshold float64) HomeClassifier {
	return HomeClassifier{bedsThreshold: bedsThreshold, bathsThreshold: bathsThreshold}
}

func (c HomeClassifier) Classify(beds int, baths float64) Classification {
	large := beds >= c.bedsThreshold || baths >= c.bathsThreshold
	edge := large && beds <= c.bedsThreshold && baths <= c.bathsThreshold
	return Classification{
		IsLargeHome:            large,
		IsEdgeLargeHome:        edge,
		IsSoloAllowed:          !large || edge,
		IsMultiCleanerRequired: large && !edge,
	}
}

func (c HomeClassifier) ClassifyHome(h *home.Home) Classification {
	return c.Classify(h.Beds(), h.Baths())
}

// RecommendedCleaners is how many cleaners keep each one under maxSoloMinutes,
// and at least two when the home requires a team.
func (c HomeClassifier) RecommendedCleaners(cl Classification, totalMinutes, maxSoloMinutes int) int {
	n := 1
	if maxSoloMinutes > 0 && totalMinutes > maxSoloMinutes {
		n = (totalMinutes + maxSoloMinutes - 1) / maxSoloMinutes
	}
	if cl.IsMultiCleanerRequired && n < 2 {
		n = 2
	}
	return n
}

package engine

import (
	"sort"
	"time"
)

// VideoStatus is the lifecycle state of a submitted video.
// pending -> active -> completed/removed; the terminal states never
// re-enter circulation.
type VideoStatus string

const (
	StatusPending   VideoStatus = "pending"
	StatusActive    VideoStatus = "active"
	StatusCompleted VideoStatus = "completed"
	StatusRemoved   VideoStatus = "removed"
)

// ServingCandidate is the slice of a video record the serving rule needs.
type ServingCandidate struct {
	ID            string
	CreatorID     string
	Status        VideoStatus
	PriorityScore float64
	ActivatedAt   time.Time
}

// RankCandidates filters and orders videos for "serve next video to viewer".
// Only active videos are eligible; the viewer's own videos and videos the
// viewer already completed are excluded so creators cannot reward themselves
// and nobody earns twice for the same video. Ordering is priority score
// descending, ties broken by oldest activation so low-score videos are never
// starved.
func (c Config) RankCandidates(candidates []ServingCandidate, viewerID string, completedByViewer map[string]bool) []ServingCandidate {
	eligible := make([]ServingCandidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Status != StatusActive {
			continue
		}
		if cand.CreatorID == viewerID {
			continue
		}
		if completedByViewer[cand.ID] {
			continue
		}
		eligible = append(eligible, cand)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].PriorityScore != eligible[j].PriorityScore {
			return eligible[i].PriorityScore > eligible[j].PriorityScore
		}
		return eligible[i].ActivatedAt.Before(eligible[j].ActivatedAt)
	})

	return eligible
}

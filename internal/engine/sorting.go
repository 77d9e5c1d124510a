package engine

import (
	"fmt"
	"sync"

	"github.com/evka/playforge/internal/gamespec"
)

// SortingRun plays a sorting section: the player places every item into a
// category, then submits once for partial-credit scoring.
type SortingRun struct {
	mu      sync.Mutex
	s       *Session
	section *gamespec.Section
	content *gamespec.SortingContent

	placements  map[string]string
	submitted   bool
	done        bool
	startElapsed int
}

func NewSortingRun(s *Session, sec *gamespec.Section) (*SortingRun, error) {
	if sec.Sorting == nil || len(sec.Sorting.Items) == 0 {
		return nil, fmt.Errorf("section %q has no items to sort", sec.ID)
	}
	return &SortingRun{
		s:            s,
		section:      sec,
		content:      sec.Sorting,
		placements:   map[string]string{},
		startElapsed: s.elapsed(),
	}, nil
}

func (r *SortingRun) SectionID() string { return r.section.ID }

// Place assigns an item to a category, replacing any previous placement.
func (r *SortingRun) Place(itemID, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.submitted {
		return fmt.Errorf("already submitted")
	}
	if r.itemByID(itemID) == nil {
		return fmt.Errorf("unknown item: %s", itemID)
	}
	if r.categoryByID(categoryID) == nil {
		return fmt.Errorf("unknown category: %s", categoryID)
	}
	r.placements[itemID] = categoryID
	return nil
}

// Remove clears an item's placement.
func (r *SortingRun) Remove(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.submitted {
		return
	}
	delete(r.placements, itemID)
}

// AllPlaced reports whether every item has a category.
func (r *SortingRun) AllPlaced() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.placements) == len(r.content.Items)
}

// Submit grades the placements. Points scale with the fraction of correctly
// placed items. Submission is blocked until every item is placed.
func (r *SortingRun) Submit() (correctCount int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.submitted {
		return 0, fmt.Errorf("already submitted")
	}
	if len(r.placements) != len(r.content.Items) {
		return 0, fmt.Errorf("%d of %d items placed", len(r.placements), len(r.content.Items))
	}

	for _, item := range r.content.Items {
		if r.placements[item.ID] == item.CorrectCategory {
			correctCount++
		}
	}

	total := len(r.content.Items)
	allCorrect := correctCount == total
	points := int(float64(correctCount) / float64(total) * float64(r.s.Spec().Scoring.PointsPerCorrect) * float64(total))

	r.submitted = true
	timeSpent := r.s.elapsed() - r.startElapsed

	placements := make(map[string]string, len(r.placements))
	for k, v := range r.placements {
		placements[k] = v
	}
	r.s.RecordAnswer(r.section.ID, r.section.ID, placements, allCorrect, points, timeSpent)
	return correctCount, nil
}

// Continue completes the section after the result has been shown.
func (r *SortingRun) Continue() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.submitted {
		return fmt.Errorf("not submitted yet")
	}
	if r.done {
		return nil
	}
	r.done = true
	r.s.CompleteSection(r.section.ID)
	return nil
}

func (r *SortingRun) itemByID(id string) *gamespec.SortItem {
	for i := range r.content.Items {
		if r.content.Items[i].ID == id {
			return &r.content.Items[i]
		}
	}
	return nil
}

func (r *SortingRun) categoryByID(id string) *gamespec.SortCategory {
	for i := range r.content.Categories {
		if r.content.Categories[i].ID == id {
			return &r.content.Categories[i]
		}
	}
	return nil
}

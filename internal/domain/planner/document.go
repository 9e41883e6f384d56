package planner

import (
	"time"
)

// Document is a personal planner document: an ordered set of sections,
// each holding checklist items and free-text notes
type Document struct {
	ID        string
	Title     string
	Sections  []*Section
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Section groups checklist items under a heading, with an attached
// free-text notes field
type Section struct {
	ID    string
	Title string
	Items []*ChecklistItem
	Notes string
}

// ChecklistItem is a single actionable entry in a section
type ChecklistItem struct {
	ID   string
	Text string
	Done bool
}

// Section returns the section with the given ID, or nil
func (d *Document) Section(sectionID string) *Section {
	for _, s := range d.Sections {
		if s.ID == sectionID {
			return s
		}
	}
	return nil
}

// RemoveSection deletes the section with the given ID, preserving the
// order of the rest. Returns false if no section matched.
func (d *Document) RemoveSection(sectionID string) bool {
	for i, s := range d.Sections {
		if s.ID == sectionID {
			d.Sections = append(d.Sections[:i], d.Sections[i+1:]...)
			return true
		}
	}
	return false
}

// Item returns the checklist item with the given ID, or nil
func (s *Section) Item(itemID string) *ChecklistItem {
	for _, it := range s.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// RemoveItem deletes the item with the given ID, preserving order.
// Returns false if no item matched.
func (s *Section) RemoveItem(itemID string) bool {
	for i, it := range s.Items {
		if it.ID == itemID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemCount returns how many checklist items the document holds across
// all sections
func (d *Document) ItemCount() int {
	total := 0
	for _, s := range d.Sections {
		total += len(s.Items)
	}
	return total
}

// DoneCount returns how many checklist items are checked off
func (d *Document) DoneCount() int {
	done := 0
	for _, s := range d.Sections {
		for _, it := range s.Items {
			if it.Done {
				done++
			}
		}
	}
	return done
}

package assignment

import (
	"sort"

	"github.com/ovisslabs/oviss-backend/pkg/enums"
	"github.com/ovisslabs/oviss-backend/pkg/models"
)

// StylistChoice is the visitor's stylist selection: a specific stylist or
// "any stylist", which hands the decision to the resolver.
type StylistChoice struct {
	stylistID string
	auto      bool
}

// Specific returns a choice that pins the given stylist.
func Specific(stylistID string) StylistChoice {
	return StylistChoice{stylistID: stylistID}
}

// Auto returns a choice that delegates to the resolver.
func Auto() StylistChoice {
	return StylistChoice{auto: true}
}

// IsAuto reports whether the engine picks the stylist.
func (c StylistChoice) IsAuto() bool {
	return c.auto
}

// StylistID returns the pinned stylist id; empty for Auto.
func (c StylistChoice) StylistID() string {
	if c.auto {
		return ""
	}
	return c.stylistID
}

// Type maps the choice onto the persisted assignment type.
func (c StylistChoice) Type() enums.AssignmentType {
	if c.auto {
		return enums.AssignmentTypeSystemAuto
	}
	return enums.AssignmentTypeManual
}

// SlotRequest identifies the slot a booking targets.
type SlotRequest struct {
	Date     string
	TimeSlot string
}

// Resolve produces a definite stylist id for the request. Manual picks are
// trusted and returned unchanged, with no availability check. For Auto the
// pool is every stylist free of a Confirmed appointment at (date, slot);
// when everyone is taken the pool widens to the full roster rather than
// rejecting the booking. Candidates are ordered by same-day appointment
// count (any status) ascending, ties broken by rank ascending, and the
// first wins. Pure function; never fails.
func Resolve(choice StylistChoice, req SlotRequest, stylists []models.Stylist, existing []models.Appointment) string {
	if !choice.IsAuto() {
		return choice.StylistID()
	}

	available := make([]models.Stylist, 0, len(stylists))
	for _, s := range stylists {
		if !confirmedAt(existing, s.ID, req.Date, req.TimeSlot) {
			available = append(available, s)
		}
	}

	pool := available
	if len(pool) == 0 {
		pool = append([]models.Stylist(nil), stylists...)
	} else {
		pool = append([]models.Stylist(nil), pool...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		countI := sameDayCount(existing, pool[i].ID, req.Date)
		countJ := sameDayCount(existing, pool[j].ID, req.Date)
		if countI != countJ {
			return countI < countJ
		}
		return pool[i].Rank < pool[j].Rank
	})

	return pool[0].ID
}

func confirmedAt(appointments []models.Appointment, stylistID, date, timeSlot string) bool {
	for _, a := range appointments {
		if a.StylistID == stylistID &&
			a.Date == date &&
			a.TimeSlot == timeSlot &&
			a.Status == enums.AppointmentStatusConfirmed {
			return true
		}
	}
	return false
}

func sameDayCount(appointments []models.Appointment, stylistID, date string) int {
	count := 0
	for _, a := range appointments {
		if a.StylistID == stylistID && a.Date == date {
			count++
		}
	}
	return count
}

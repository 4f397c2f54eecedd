package services

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/teamboard/core/internal/adapters/storage"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
	"github.com/teamboard/core/internal/ports"
)

var validate = validator.New()

// validateRequest runs the DTO tags and reports failures as ErrValidation
func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}
	return nil
}

// TeamClock answers "now" and "today" in the team timezone.
type TeamClock struct {
	now func() time.Time
	loc *time.Location
}

// NewTeamClock builds a clock; nil arguments mean time.Now and the host zone.
func NewTeamClock(now func() time.Time, loc *time.Location) TeamClock {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return TeamClock{now: now, loc: loc}
}

func (c TeamClock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c TeamClock) Location() *time.Location {
	return c.loc
}

// Today is midnight of the current team day.
func (c TeamClock) Today() time.Time {
	return period.Today(c.now(), c.loc)
}

func (c TeamClock) TodayString() string {
	return period.FormatDate(c.Today())
}

// objectPath namespaces an upload under prefix with a millisecond stamp.
func objectPath(prefix, name string, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s", prefix, at.UnixMilli(), storage.SafeName(name))
}

func checkDate(s string) error {
	if !period.ValidDate(s) {
		return fmt.Errorf("%w: %q", entities.ErrInvalidDate, s)
	}
	return nil
}

func sortedKeys(doc ports.Document) []string {
	return slices.Sorted(maps.Keys(doc))
}

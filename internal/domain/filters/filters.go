// Package filters holds the in-memory predicates used to narrow fetched collections.
package filters

import (
	"strings"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/domain/period"
)

// Predicate reports whether an item is kept.
type Predicate[T any] func(T) bool

// Apply keeps the items matching every predicate, preserving order. The result is never nil.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

// Count is Apply without the allocation.
func Count[T any](items []T, preds ...Predicate[T]) int {
	n := 0
	for _, item := range items {
		if match(item, preds) {
			n++
		}
	}
	return n
}

func match[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

func Not[T any](p Predicate[T]) Predicate[T] {
	return func(item T) bool { return !p(item) }
}

// Task predicates

func ByAssignee(name string) Predicate[entities.Task] {
	return func(t entities.Task) bool { return t.Assignee == name }
}

func ByStatus(status entities.TaskStatus) Predicate[entities.Task] {
	return func(t entities.Task) bool { return t.Status == status }
}

func ByCategory(category entities.Category) Predicate[entities.Task] {
	return func(t entities.Task) bool { return t.Category == category }
}

func NotDone() Predicate[entities.Task] {
	return func(t entities.Task) bool { return !t.IsDone() }
}

// DueBetween is inclusive on both ends.
func DueBetween(r period.Range) Predicate[entities.Task] {
	return func(t entities.Task) bool { return r.Contains(t.DueDate) }
}

// DueInMonth matches on the YYYY-MM prefix of the due date.
func DueInMonth(monthKey string) Predicate[entities.Task] {
	prefix := monthKey + "-"
	return func(t entities.Task) bool { return strings.HasPrefix(t.DueDate, prefix) }
}

func DueOn(date string) Predicate[entities.Task] {
	return func(t entities.Task) bool { return t.DueDate == date }
}

// Overdue keeps open tasks due strictly before today.
func Overdue(today string) Predicate[entities.Task] {
	return func(t entities.Task) bool { return t.IsOverdue(today) }
}

// KPI predicates

func InQuarter(year int, quarter entities.Quarter) Predicate[entities.KPI] {
	return func(k entities.KPI) bool { return k.Year == year && k.Quarter == quarter }
}

func KPIByAssignee(name string) Predicate[entities.KPI] {
	return func(k entities.KPI) bool { return k.Assignee == name }
}

// Reel predicates

func PostedBetween(r period.Range) Predicate[entities.InstagramReel] {
	return func(reel entities.InstagramReel) bool { return r.Contains(reel.PostDate) }
}

package series

import (
	"fmt"
	"iter"
	"slices"
)

// Value is the set of scalar types a Series can carry.
type Value interface {
	~int | ~float32 | ~float64
}

// Series stores a chronological sequence of values, each associated with a
// specific date. Dates are unique and the sequence is always sorted, so the
// date axis is strictly increasing by construction.
type Series[T Value] struct {
	days   []Date
	values []T
}

// New returns an empty series.
func New[T Value]() *Series[T] { return &Series[T]{} }

// Len returns the number of points in the series.
func (s *Series[T]) Len() int { return len(s.days) }

// Append adds a point to the series, keeping the date axis sorted.
//
// An existing value at that date is overwritten.
func (s *Series[T]) Append(on Date, v T) *Series[T] {
	i, found := s.search(on)
	if found {
		// Last write wins: a revised quote replaces the old one.
		s.values[i] = v
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// search locates the insertion index for a date.
func (s *Series[T]) search(on Date) (int, bool) {
	return slices.BinarySearchFunc(s.days, on, Date.Compare)
}

// At returns the i-th point in chronological order.
func (s *Series[T]) At(i int) (Date, T) { return s.days[i], s.values[i] }

// Get returns the value at 'day' and true, or zero value and false.
func (s *Series[T]) Get(day Date) (T, bool) {
	if i, found := s.search(day); found {
		return s.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on a given day, or the most recent value before
// it. It returns the value and true if found, otherwise the zero value and
// false.
func (s *Series[T]) ValueAsOf(day Date) (T, bool) {
	i, found := s.search(day)
	if found {
		return s.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false // No date on or before the given day.
	}
	return s.values[i-1], true
}

// First returns the earliest date and value in the series.
// If the series is empty, it returns zero values.
func (s *Series[T]) First() (day Date, value T) {
	if len(s.days) == 0 {
		return Date{}, *new(T)
	}
	return s.days[0], s.values[0]
}

// Last returns the latest date and value in the series.
// If the series is empty, it returns zero values.
func (s *Series[T]) Last() (day Date, value T) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return s.days[last], s.values[last]
}

// Values returns an iterator over all date/value pairs, in chronological order.
func (s *Series[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}

// Index returns a copy of the date axis.
func (s *Series[T]) Index() []Date { return slices.Clone(s.days) }

// Between returns the sub-series with dates in [from, to], boundaries included.
func (s *Series[T]) Between(from, to Date) *Series[T] {
	sub := New[T]()
	for i, on := range s.days {
		if on.Before(from) || on.After(to) {
			continue
		}
		sub.days = append(sub.days, on)
		sub.values = append(sub.values, s.values[i])
	}
	return sub
}

// Select returns the sub-series restricted to the given dates, in order.
// It fails if any requested date is absent: restriction never silently drops
// a requested point.
func (s *Series[T]) Select(days []Date) (*Series[T], error) {
	sub := New[T]()
	for _, on := range days {
		v, ok := s.Get(on)
		if !ok {
			return nil, fmt.Errorf("no value on %s", on)
		}
		sub.days = append(sub.days, on)
		sub.values = append(sub.values, v)
	}
	return sub, nil
}

// SameIndex reports whether two series share the exact same date axis.
func SameIndex[A, B Value](a *Series[A], b *Series[B]) bool {
	if a.Len() != b.Len() {
		return false
	}
	return slices.Equal(a.days, b.days)
}

// Intersect returns the dates present in both series, in chronological order.
func Intersect[A, B Value](a *Series[A], b *Series[B]) []Date {
	var common []Date
	for _, on := range a.days {
		if _, ok := b.Get(on); ok {
			common = append(common, on)
		}
	}
	return common
}

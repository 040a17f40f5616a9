// Package clock abstracts the current time so promotion validity can be
// evaluated against a fixed instant in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type sistema struct{}

// Sistema returns the wall clock.
func Sistema() Clock { return sistema{} }

func (sistema) Now() time.Time { return time.Now() }

// Fijo is a settable clock for tests.
type Fijo struct {
	ahora time.Time
}

func NewFijo(t time.Time) *Fijo { return &Fijo{ahora: t} }

func (f *Fijo) Now() time.Time { return f.ahora }

func (f *Fijo) Set(t time.Time) { f.ahora = t }

func (f *Fijo) Avanzar(d time.Duration) { f.ahora = f.ahora.Add(d) }

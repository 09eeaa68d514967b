package shapes

import "errors"

// Kind of shape.
type Kind int

const (
	KindCircle Kind = iota
	KindSquare
	KindPoly Kind = 7
)

type Shape interface {
	Area() float64
}

type Base struct {
	ID string
}

type Circle struct {
	Base
	Radius float64
	Tags   []string
	OnHit  func(damage int) bool
	kind   Kind
}

func NewCircle(r float64) *Circle {
	return &Circle{Radius: r}
}

func (c *Circle) Area() float64 {
	return 3 * c.Radius * c.Radius
}

func (c *Circle) Scale(f float64) (*Circle, error) {
	if f <= 0 {
		return nil, errors.New("scale must be positive")
	}
	return &Circle{Base: c.Base, Radius: c.Radius * f}, nil
}

func (c *Circle) Bounds() (w, h float64) {
	return 2 * c.Radius, 2 * c.Radius
}

func (c *Circle) Kind() Kind {
	return c.kind
}

func (c *Circle) Each(fn func(Kind)) {
	fn(c.kind)
}

func (c *Circle) meta() {}

type Box[T any] struct {
	V T
}

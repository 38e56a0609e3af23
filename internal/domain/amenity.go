package domain

import "context"

const AmenityClass = "Amenity"

type Amenity struct {
	BaseModel
}

func NewAmenity() *Amenity {
	a := &Amenity{BaseModel: newBase()}
	register(a)
	return a
}

func (a *Amenity) ClassName() string              { return AmenityClass }
func (a *Amenity) ToMap() map[string]any          { return a.toMap(AmenityClass) }
func (a *Amenity) String() string                 { return a.describe(AmenityClass) }
func (a *Amenity) Save(ctx context.Context) error { return save(ctx, a) }

func (a *Amenity) Name() string     { return a.str("name") }
func (a *Amenity) SetName(s string) { a.set("name", s) }

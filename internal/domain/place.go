package domain

import "context"

const PlaceClass = "Place"

// Place is a listing. AmenityIDs reference Amenity ids; nothing enforces that
// they exist.
type Place struct {
	BaseModel
}

func NewPlace() *Place {
	p := &Place{BaseModel: newBase()}
	register(p)
	return p
}

func (p *Place) ClassName() string              { return PlaceClass }
func (p *Place) ToMap() map[string]any          { return p.toMap(PlaceClass) }
func (p *Place) String() string                 { return p.describe(PlaceClass) }
func (p *Place) Save(ctx context.Context) error { return save(ctx, p) }

func (p *Place) CityID() string       { return p.str("city_id") }
func (p *Place) UserID() string       { return p.str("user_id") }
func (p *Place) Name() string         { return p.str("name") }
func (p *Place) Description() string  { return p.str("description") }
func (p *Place) NumberRooms() int     { return p.integer("number_rooms") }
func (p *Place) NumberBathrooms() int { return p.integer("number_bathrooms") }
func (p *Place) MaxGuest() int        { return p.integer("max_guest") }
func (p *Place) PriceByNight() int    { return p.integer("price_by_night") }
func (p *Place) Latitude() float64    { return p.float("latitude") }
func (p *Place) Longitude() float64   { return p.float("longitude") }
func (p *Place) AmenityIDs() []string { return p.strs("amenity_ids") }

func (p *Place) SetCityID(s string)       { p.set("city_id", s) }
func (p *Place) SetUserID(s string)       { p.set("user_id", s) }
func (p *Place) SetName(s string)         { p.set("name", s) }
func (p *Place) SetDescription(s string)  { p.set("description", s) }
func (p *Place) SetNumberRooms(n int)     { p.set("number_rooms", n) }
func (p *Place) SetNumberBathrooms(n int) { p.set("number_bathrooms", n) }
func (p *Place) SetMaxGuest(n int)        { p.set("max_guest", n) }
func (p *Place) SetPriceByNight(n int)    { p.set("price_by_night", n) }
func (p *Place) SetLatitude(f float64)    { p.set("latitude", f) }
func (p *Place) SetLongitude(f float64)   { p.set("longitude", f) }

// AddAmenity appends id to AmenityIDs unless it is already there.
func (p *Place) AddAmenity(id string) {
	ids := p.strs("amenity_ids")
	for _, have := range ids {
		if have == id {
			return
		}
	}
	p.set("amenity_ids", append(ids, id))
}

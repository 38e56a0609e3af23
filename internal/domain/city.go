package domain

import "context"

const CityClass = "City"

type City struct {
	BaseModel
}

func NewCity() *City {
	c := &City{BaseModel: newBase()}
	register(c)
	return c
}

func (c *City) ClassName() string              { return CityClass }
func (c *City) ToMap() map[string]any          { return c.toMap(CityClass) }
func (c *City) String() string                 { return c.describe(CityClass) }
func (c *City) Save(ctx context.Context) error { return save(ctx, c) }

func (c *City) StateID() string { return c.str("state_id") }
func (c *City) Name() string    { return c.str("name") }

func (c *City) SetStateID(s string) { c.set("state_id", s) }
func (c *City) SetName(s string)    { c.set("name", s) }

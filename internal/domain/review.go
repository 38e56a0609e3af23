package domain

import "context"

const ReviewClass = "Review"

// Review is a user's text about a place.
type Review struct {
	BaseModel
}

// NewReview creates a Review and registers it with the bound storage.
func NewReview() *Review {
	r := &Review{BaseModel: newBase()}
	register(r)
	return r
}

func (r *Review) ClassName() string              { return ReviewClass }
func (r *Review) ToMap() map[string]any          { return r.toMap(ReviewClass) }
func (r *Review) String() string                 { return r.describe(ReviewClass) }
func (r *Review) Save(ctx context.Context) error { return save(ctx, r) }

func (r *Review) PlaceID() string { return r.str("place_id") }
func (r *Review) UserID() string  { return r.str("user_id") }
func (r *Review) Text() string    { return r.str("text") }

func (r *Review) SetPlaceID(s string) { r.set("place_id", s) }
func (r *Review) SetUserID(s string)  { r.set("user_id", s) }
func (r *Review) SetText(s string)    { r.set("text", s) }

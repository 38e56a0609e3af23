package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husham35/AirBnB-clone/internal/domain"
)

func TestReview_Instantiation(t *testing.T) {
	eng, _ := bindFileStorage(t)

	r := domain.NewReview()
	_, ok := eng.Get(domain.KeyOf(r))
	assert.True(t, ok)
	assert.Equal(t, "", r.PlaceID())
	assert.Equal(t, "", r.UserID())
	assert.Equal(t, "", r.Text())
	for _, k := range []string{"place_id", "user_id", "text"} {
		assert.NotContains(t, r.ToMap(), k)
	}
}

func TestReview_UniqueIDsAndOrderedTimestamps(t *testing.T) {
	bindFileStorage(t)

	r1 := domain.NewReview()
	time.Sleep(2 * time.Microsecond)
	r2 := domain.NewReview()
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.True(t, r1.CreatedAt.Before(r2.CreatedAt))
}

func TestReview_SettersSerialize(t *testing.T) {
	r := domain.NewReview()
	r.SetPlaceID("p-1")
	r.SetUserID("u-1")
	r.SetText("Great stay")

	d := r.ToMap()
	assert.Equal(t, "p-1", d["place_id"])
	assert.Equal(t, "u-1", d["user_id"])
	assert.Equal(t, "Great stay", d["text"])
	assert.Equal(t, "Review", d["__class__"])
	assert.IsType(t, "", d["created_at"])
	assert.IsType(t, "", d["updated_at"])
}

func TestReview_DecodeRoundTrip(t *testing.T) {
	r := domain.NewReview()
	r.SetText("ok")

	m, err := domain.Decode(r.ToMap())
	require.NoError(t, err)
	back, ok := m.(*domain.Review)
	require.True(t, ok)
	assert.Equal(t, r.ID, back.ID)
	assert.True(t, r.CreatedAt.Equal(back.CreatedAt))
	assert.True(t, r.UpdatedAt.Equal(back.UpdatedAt))
	assert.Equal(t, "ok", back.Text())
}

func TestReview_DecodeRejectsWrongTypes(t *testing.T) {
	_, err := domain.DecodeAs(domain.ReviewClass, map[string]any{"text": 42})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.DecodeAs(domain.ReviewClass, map[string]any{"__class__": "User"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.DecodeAs(domain.ReviewClass, map[string]any{
		"created_at": "2020-01-02T00:00:00.000000",
		"updated_at": "2020-01-01T00:00:00.000000",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReview_SaveTwice(t *testing.T) {
	_, path := bindFileStorage(t)
	ctx := context.Background()

	r := domain.NewReview()
	require.NoError(t, r.Save(ctx))
	first := r.UpdatedAt
	require.NoError(t, r.Save(ctx))
	assert.True(t, first.Before(r.UpdatedAt))
	assert.Contains(t, readFile(t, path), "Review."+r.ID)
}

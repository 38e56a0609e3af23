package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/husham35/AirBnB-clone/internal/domain"
)

// ImportService copies objects from another HBnB instance.
type ImportService struct {
	remote  domain.RemoteSource
	objects *ObjectService
}

func NewImportService(r domain.RemoteSource, o *ObjectService) *ImportService {
	return &ImportService{remote: r, objects: o}
}

// ImportClass fetches every remote object of class and imports it. A class
// the remote does not know, or refuses to serve, is logged and skipped, as
// are objects that claim another class.
func (s *ImportService) ImportClass(ctx context.Context, class string) (int, error) {
	if err := checkClass(class); err != nil {
		return 0, err
	}
	items, err := s.remote.ListObjects(ctx, class)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			log.Warn().Str("class", class).Msg("remote has no such class")
			return 0, nil
		case errors.Is(err, domain.ErrAccessDenied):
			log.Warn().Str("class", class).Err(err).Msg("remote refused class")
			return 0, nil
		}
		return 0, fmt.Errorf("list %s: %w", class, err)
	}

	keep := items[:0]
	for _, it := range items {
		c, ok := it["__class__"]
		if !ok {
			it["__class__"] = class
		} else if c != class {
			log.Warn().Str("class", class).Interface("got", c).Interface("id", it["id"]).Msg("remote object has another class, skipped")
			continue
		}
		keep = append(keep, it)
	}
	return s.objects.Import(ctx, keep)
}

package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/husham35/AirBnB-clone/internal/domain"
)

// prepareAttrs drops identity/lifecycle keys from a client payload and hashes
// plain-text User passwords.
func prepareAttrs(class string, in map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if domain.IsProtected(k) {
			continue
		}
		out[k] = v
	}
	if class != domain.UserClass {
		return out, nil
	}
	raw, ok := out["password"]
	if !ok {
		return out, nil
	}
	pw, ok := raw.(string)
	if !ok {
		return nil, &domain.ValidationError{Field: "password", Reason: fmt.Sprintf("expected string, got %T", raw)}
	}
	if pw != "" && !domain.IsPasswordHash(pw) {
		hash, err := domain.HashPassword(pw)
		if err != nil {
			return nil, err
		}
		out["password"] = hash
	}
	return out, nil
}

// assignAll applies attrs only if every one of them validates.
func assignAll(m domain.Model, attrs map[string]any) error {
	if err := domain.Check(m.ClassName(), attrs); err != nil {
		return err
	}
	keys := lo.Keys(attrs)
	slices.Sort(keys)
	var errs []error
	for _, k := range keys {
		if err := domain.Assign(m, k, attrs[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkClass(class string) error {
	if !domain.IsClass(class) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownClass, class)
	}
	return nil
}

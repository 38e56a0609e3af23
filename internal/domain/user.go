package domain

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const UserClass = "User"

// User is an account holder. Password holds whatever was assigned; the app
// layer stores bcrypt hashes through SetPassword.
type User struct {
	BaseModel
}

// NewUser creates a User and registers it with the bound storage.
func NewUser() *User {
	u := &User{BaseModel: newBase()}
	register(u)
	return u
}

func (u *User) ClassName() string              { return UserClass }
func (u *User) ToMap() map[string]any          { return u.toMap(UserClass) }
func (u *User) String() string                 { return u.describe(UserClass) }
func (u *User) Save(ctx context.Context) error { return save(ctx, u) }

func (u *User) Email() string     { return u.str("email") }
func (u *User) Password() string  { return u.str("password") }
func (u *User) FirstName() string { return u.str("first_name") }
func (u *User) LastName() string  { return u.str("last_name") }

func (u *User) SetEmail(s string)     { u.set("email", s) }
func (u *User) SetFirstName(s string) { u.set("first_name", s) }
func (u *User) SetLastName(s string)  { u.set("last_name", s) }

// SetPassword stores the bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	u.set("password", hash)
	return nil
}

// CheckPassword compares plain against the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password()), []byte(plain)) == nil
}

// HashPassword returns the bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// IsPasswordHash reports whether s already is a bcrypt hash.
func IsPasswordHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

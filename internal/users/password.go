package users

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// bcrypt operates on at most 72 bytes; longer passwords are truncated the
// same way on hash and verify so both sides agree.
func truncatePassword(pw string) []byte {
	b := []byte(pw)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}

// HashPassword derives a one-way hash of the password.
func HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(truncatePassword(pw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(pw)) == nil
}

package pkg

import "golang.org/x/crypto/bcrypt"

// bcrypt cost of app secret hashes
const secretHashCost = 14

// HashPassword returns the bcrypt hash of a secret, as expected in
// BEDGEMON_APP_SECRET_HASH.
func HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), secretHashCost)
	if err != nil {
		return "", err
	}
	return BytesToString(hash), nil
}

func CheckPasswordHash(secret, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

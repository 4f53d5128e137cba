package translate

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/google/uuid"
)

// Sign computes the request signature: lowercase hex MD5 of appID+query+salt+secretKey.
func Sign(appID, query, salt, secretKey string) string {
	sum := md5.Sum([]byte(appID + query + salt + secretKey))
	return hex.EncodeToString(sum[:])
}

// SaltFunc returns a nonce that must be unique per outbound request.
type SaltFunc func() string

// RandomSalt returns a random UUIDv4 string.
func RandomSalt() string {
	return uuid.NewString()
}

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// saltSource is the fixed string the process-wide salt is derived from. A
// single global salt (rather than a per-user random one stored next to each
// hash) weakens defense against cross-user dictionary precomputation; it is
// kept because the persisted user files depend on this exact digest chain.
const saltSource = "S$$apEWnlpd7d*Pus#86FXA3HkDO@z1jXUkv"

// DefaultSalt is the lowercase-hex SHA-256 of saltSource, applied
// identically to every password before hashing.
var DefaultSalt = hexDigest(saltSource)

// SaltedHash returns the lowercase-hex SHA-256 digest of salt concatenated
// with value. Pure and deterministic.
func SaltedHash(salt, value string) string {
	return hexDigest(salt + value)
}

func hexDigest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

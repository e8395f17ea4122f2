package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaltedHashDeterministic(t *testing.T) {
	assert.Equal(t, SaltedHash(DefaultSalt, "abc"), SaltedHash(DefaultSalt, "abc"))
	assert.NotEqual(t, SaltedHash(DefaultSalt, "abc"), SaltedHash(DefaultSalt, "abd"))
	assert.Len(t, SaltedHash(DefaultSalt, "abc"), 64)
}

// Known-answer vectors carried over from the existing user files: changing
// the salt derivation or digest chain invalidates every stored credential.
func TestSaltedHashKnownAnswers(t *testing.T) {
	assert.Equal(t, "8de0154e7a49ae9b1db169c413b28cc08ce6a8e18a6a886bae9ecc7520d3e1be", DefaultSalt)
	assert.Equal(t,
		"e9ec4a03944e7ed657d80026576878b2e3c35c2648bbf537c2415482fce185f2",
		SaltedHash(DefaultSalt, "d82494f05d6917ba02f7aaa29689ccb444bb73f20380876cb05d1f37537b7892"))
}

func TestSaltedHashDependsOnSalt(t *testing.T) {
	assert.NotEqual(t, SaltedHash("salt-a", "value"), SaltedHash("salt-b", "value"))
}

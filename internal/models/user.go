package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserRecord is the persisted credential entry for a single user. The
// passwordhash field always holds the salted digest, never the value the
// client sent.
type UserRecord struct {
	PasswordHash string `json:"passwordhash"`
	IsAdmin      bool   `json:"isAdmin,omitempty"`
}

// UserInfo is the wire shape of a user-listing entry.
type UserInfo struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// Claims defines the structure of the JWT claims. Permissions is a pointer
// so a token without the claim stays distinguishable from one carrying an
// empty permission list.
type Claims struct {
	Permissions *Permissions `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

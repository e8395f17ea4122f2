package models

import (
	"encoding/json"
	"strings"
)

type permKind int

const (
	permSingle permKind = iota
	permList
	permInvalid
)

// Permissions is the permissions claim as it appears in a token: either a
// single whitespace-delimited string or a list of strings. Any other JSON
// shape unmarshals as invalid instead of erroring, so a token with a broken
// permissions claim still parses and the guard can report the specific
// problem.
type Permissions struct {
	kind   permKind
	single string
	list   []string
}

// SinglePermission builds the string form of the claim.
func SinglePermission(s string) Permissions {
	return Permissions{kind: permSingle, single: s}
}

// PermissionList builds the list form of the claim. With no arguments it is
// an empty list, which is still a present claim.
func PermissionList(perms ...string) Permissions {
	return Permissions{kind: permList, list: perms}
}

// Valid reports whether the claim had a recognized shape.
func (p *Permissions) Valid() bool {
	return p.kind != permInvalid
}

// Values normalizes the claim into permission tokens. The single-string form
// is split on whitespace.
func (p *Permissions) Values() []string {
	if p.kind == permSingle {
		return strings.Fields(p.single)
	}
	return p.list
}

func (p *Permissions) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = Permissions{kind: permSingle, single: single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = Permissions{kind: permList, list: list}
		return nil
	}
	*p = Permissions{kind: permInvalid}
	return nil
}

func (p Permissions) MarshalJSON() ([]byte, error) {
	if p.kind == permSingle {
		return json.Marshal(p.single)
	}
	if p.list == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(p.list)
}

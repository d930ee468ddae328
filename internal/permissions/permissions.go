// Package permissions decides whether a user may read or write a module.
// All functions are pure.
package permissions

import (
	"strings"

	"github.com/dmitrijs2005/trainingkeeper/internal/models"
)

type Intent int

const (
	Read Intent = iota
	Write
)

func (i Intent) letter() byte {
	if i == Write {
		return 'w'
	}
	return 'r'
}

func (i Intent) String() string {
	if i == Write {
		return "write"
	}
	return "read"
}

// AuthorityAll grants every authority and every access.
const AuthorityAll = "ALL"

// AuthoritiesSatisfied reports whether user holds every required authority.
// An empty requirement is always satisfied.
func AuthoritiesSatisfied(required []string, user models.User) bool {
	if len(required) == 0 {
		return true
	}
	held := make(map[string]struct{})
	for _, a := range user.Authorities() {
		held[a] = struct{}{}
	}
	if _, ok := held[AuthorityAll]; ok {
		return true
	}
	for _, a := range required {
		if _, ok := held[a]; !ok {
			return false
		}
	}
	return true
}

// grants checks the metadata part of a DHIS2 access string.
func grants(access string, intent Intent) bool {
	if len(access) > 2 {
		access = access[:2]
	}
	return strings.IndexByte(access, intent.letter()) >= 0
}

// HasAccess evaluates the sharing settings of rec for user.
func HasAccess(rec models.PersistedModule, user models.User, intent Intent) bool {
	for _, a := range user.Authorities() {
		if a == AuthorityAll {
			return true
		}
	}
	if user.ID != "" && rec.User.ID == user.ID {
		return true
	}
	if grants(rec.PublicAccess, intent) {
		return true
	}
	for _, ua := range rec.UserAccesses {
		if ua.ID == user.ID && grants(ua.Access, intent) {
			return true
		}
	}
	for _, ga := range rec.UserGroupAccesses {
		if user.InGroup(ga.ID) && grants(ga.Access, intent) {
			return true
		}
	}
	return false
}

// Authorize requires both the module's authorities and a sharing grant.
func Authorize(rec models.PersistedModule, user models.User, intent Intent) bool {
	return AuthoritiesSatisfied(rec.DhisAuthorities, user) && HasAccess(rec, user, intent)
}

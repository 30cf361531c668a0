// Package roles normalizes the backend's role claim into a closed tag set.
// The clinic API has emitted the claim in three shapes over time: a plain
// string ("ROLE_PACIENTE"), a list of strings, and an object with a name
// field. Everything downstream switches on RoleTag, never on raw strings.
package roles

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type RoleTag int

const (
	Unknown RoleTag = iota
	Patient
	Dentist
	Receptionist
	Admin
)

func (r RoleTag) String() string {
	switch r {
	case Patient:
		return "PACIENTE"
	case Dentist:
		return "DENTISTA"
	case Receptionist:
		return "RECEPCIONISTA"
	case Admin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// Resolve converts any of the observed claim shapes into a RoleTag.
// Nil and unrecognized values resolve to Unknown, which callers must treat
// as "unauthenticated" or "no menu entries".
func Resolve(claim any) RoleTag {
	switch v := claim.(type) {
	case string:
		return fromString(v)
	case []any:
		if len(v) == 0 {
			return Unknown
		}
		return fromString(fmt.Sprintf("%v", v[0]))
	case []string:
		if len(v) == 0 {
			return Unknown
		}
		return fromString(v[0])
	case map[string]any:
		if name, ok := v["name"]; ok {
			return fromString(fmt.Sprintf("%v", name))
		}
		return Unknown
	default:
		return Unknown
	}
}

func fromString(s string) RoleTag {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimPrefix(norm, "ROLE_")
	switch {
	case strings.Contains(norm, "PACIENTE"):
		return Patient
	case strings.Contains(norm, "DENTISTA"):
		return Dentist
	case strings.Contains(norm, "RECEPCIONISTA"):
		return Receptionist
	case strings.Contains(norm, "ADMIN"):
		return Admin
	default:
		return Unknown
	}
}

// FromToken extracts and resolves the role claim of a backend-issued JWT.
// The token signature is the backend's concern; the portal only reads the
// claim, so parsing is done without verification. A token that cannot be
// parsed at all yields an error so the caller can force a logout.
func FromToken(token string) (RoleTag, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Unknown, fmt.Errorf("parse token: %w", err)
	}
	claim, ok := claims["role"]
	if !ok {
		claim = claims["roles"]
	}
	return Resolve(claim), nil
}

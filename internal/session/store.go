// Package session persists per-customer storefront state in two scopes:
// durable state follows the client across restarts, ephemeral state lives
// only for one browsing session.
package session

import (
	"context"
	"errors"
	"fmt"
)

type Scope string

const (
	Durable   Scope = "durable"
	Ephemeral Scope = "session"
)

// Slot is a named value bound to exactly one scope.
type Slot struct {
	Name  string
	Scope Scope
}

var (
	CartSlot          = Slot{Name: "cart", Scope: Durable}
	ActiveOfferSlot   = Slot{Name: "active_offer", Scope: Ephemeral}
	AppliedCouponSlot = Slot{Name: "applied_coupon", Scope: Ephemeral}
	OrderTotalSlot    = Slot{Name: "order_total", Scope: Ephemeral}
	OrderAddressSlot  = Slot{Name: "order_address", Scope: Ephemeral}
)

var ErrNoIdentity = errors.New("session identity is incomplete")

// Identity names the owner of each scope.
type Identity struct {
	ClientID  string
	SessionID string
}

func (id Identity) owner(scope Scope) (string, error) {
	var owner string
	switch scope {
	case Durable:
		owner = id.ClientID
	case Ephemeral:
		owner = id.SessionID
	default:
		return "", fmt.Errorf("unknown scope %q", scope)
	}
	if owner == "" {
		return "", fmt.Errorf("%w: no owner for %s scope", ErrNoIdentity, scope)
	}
	return owner, nil
}

// Store reads and writes slot values. Load reports false when the slot is
// empty and leaves dst untouched.
type Store interface {
	Load(ctx context.Context, id Identity, slot Slot, dst any) (bool, error)
	Save(ctx context.Context, id Identity, slot Slot, value any) error
	Delete(ctx context.Context, id Identity, slots ...Slot) error
}

func key(prefix string, id Identity, slot Slot) (string, error) {
	owner, err := id.owner(slot.Scope)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s:%s:%s", prefix, slot.Scope, owner, slot.Name), nil
}

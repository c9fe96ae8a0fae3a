package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AssemblyIDMapping reports the culops assembly mapped to a local assembly.
// A missing mapping has a nil CulopsAssemblyID and is never Deleted.
type AssemblyIDMapping struct {
	AssemblyID       uuid.UUID
	CulopsAssemblyID *int64
	Deleted          bool
}

// Missing reports whether no culops assembly is mapped.
func (m AssemblyIDMapping) Missing() bool { return m.CulopsAssemblyID == nil }

// IdempotencyKey guards a named action against duplicate execution.
type IdempotencyKey struct {
	Key       string
	Action    string
	ExpiresAt time.Time
}

// Live reports whether the key still guards its action at now.
func (k IdempotencyKey) Live(now time.Time) bool { return k.ExpiresAt.After(now) }

// Idempotent actions.
const (
	ActionAddAssembly  = "add_assembly"
	ActionCreatePantry = "create_pantry"
	ActionSyncPantry   = "sync_pantry"
)

// ScopedIdempotencyKey namespaces a client-supplied key by partner and
// action, so one partner's key never matches another partner's or another
// action's row. The partner id is length-prefixed to keep the encoding
// unambiguous.
func ScopedIdempotencyKey(partnerID, action, key string) string {
	return strconv.Itoa(len(partnerID)) + ":" + partnerID + ":" + action + ":" + key
}

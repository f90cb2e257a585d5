package domain

import "time"

// ChangeAction is the kind of write recorded in the change journal.
type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// InventoryChange is one audit entry for a write to an inventory record.
type InventoryChange struct {
	RecordID    string
	InventoryID string
	OwnerID     string
	Action      ChangeAction
	At          time.Time
}

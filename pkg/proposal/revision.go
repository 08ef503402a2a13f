package proposal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FieldChange records the old and new value of a single proposal field.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Revision is an immutable, append-only log entry tied to a proposal.
// Numbers are strictly increasing per proposal.
type Revision struct {
	ID         int
	ProposalID int
	Number     int
	Summary    string
	Changes    map[string]FieldChange
	CreatedAt  time.Time
}

// ComputeDiff returns the field-level changes between two versions of a
// proposal. Items are compared field by field per position so that swapping
// a service for another one at the same price still shows up.
func ComputeDiff(before, after Proposal) map[string]FieldChange {
	changes := map[string]FieldChange{}
	record := func(field, old, new string) {
		if old != new {
			changes[field] = FieldChange{Old: old, New: new}
		}
	}

	record("title", before.Title, after.Title)
	record("description", before.Description, after.Description)
	record("notes", before.Notes, after.Notes)
	record("clientName", before.Client.Name, after.Client.Name)
	record("clientEmail", before.Client.Email, after.Client.Email)
	record("clientPhone", before.Client.Phone, after.Client.Phone)
	record("clientAddress", before.Client.Address, after.Client.Address)
	record("validityDays", strconv.Itoa(before.ValidityDays), strconv.Itoa(after.ValidityDays))
	record("paymentMethods", strings.Join(before.PaymentMethods, ", "), strings.Join(after.PaymentMethods, ", "))
	record("status", string(before.Status), string(after.Status))
	if !itemsEqual(before.Items, after.Items) {
		changes["items"] = FieldChange{Old: itemsSummary(before.Items), New: itemsSummary(after.Items)}
	}
	record("total", before.Total().StringFixed(2), after.Total().StringFixed(2))

	return changes
}

func itemsEqual(before, after []Item) bool {
	if len(before) != len(after) {
		return false
	}
	for i := range before {
		b, a := before[i], after[i]
		if b.ServiceID != a.ServiceID || b.Name != a.Name || b.Description != a.Description ||
			b.PriceType != a.PriceType || !b.UnitPrice.Equal(a.UnitPrice) || !b.Quantity.Equal(a.Quantity) {
			return false
		}
	}
	return true
}

// itemsSummary renders an item list for the revision log, e.g. "3x Tomada nova, 2x Interruptor".
func itemsSummary(items []Item) string {
	if len(items) == 0 {
		return "no items"
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%sx %s", item.Quantity.String(), item.Name))
	}
	return strings.Join(parts, ", ")
}

// summarizeDiff builds the human readable revision summary out of the diff.
func summarizeDiff(changes map[string]FieldChange) string {
	if statusChange, ok := changes["status"]; ok && len(changes) == 1 {
		return fmt.Sprintf("Status changed from %s to %s", statusChange.Old, statusChange.New)
	}

	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return "No changes"
	}
	sort.Strings(fields)
	return "Updated " + strings.Join(fields, ", ")
}

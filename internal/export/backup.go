// Package export produces the backup and report formats consumed by the
// reporting surface. Formatting for download (filenames, content types) is
// the HTTP layer's job.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restopos-backend/internal/domain"
	"restopos-backend/internal/store"
)

// Backup is the full-backup document. Date fields serialize as RFC 3339
// strings and decode back to time values, so an exported backup re-imports
// to an equivalent data set.
type Backup struct {
	Orders     []domain.Order         `json:"orders"`
	Inventory  []domain.InventoryItem `json:"inventory"`
	Menu       []domain.MenuItem      `json:"menu"`
	Staff      []domain.StaffMember   `json:"staff"`
	Expenses   []domain.Expense       `json:"expenses"`
	Logs       []domain.ActivityLog   `json:"logs"`
	ExportDate time.Time              `json:"exportDate"`
}

// BackupJSON serializes every collection into one indented JSON document.
func BackupJSON(ctx context.Context, st *store.Store, now time.Time) ([]byte, error) {
	b := Backup{
		Orders:     st.Orders(ctx),
		Inventory:  st.Inventory(ctx),
		Menu:       st.Menu(ctx),
		Staff:      st.Staff(ctx),
		Expenses:   st.Expenses(ctx),
		Logs:       st.Logs(ctx),
		ExportDate: now,
	}
	blob, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return blob, nil
}

// RestoreJSON replaces every collection with the contents of a backup
// document.
func RestoreJSON(ctx context.Context, st *store.Store, blob []byte) error {
	var b Backup
	if err := json.Unmarshal(blob, &b); err != nil {
		return fmt.Errorf("decode backup: %w", err)
	}
	if err := st.SaveOrders(ctx, b.Orders); err != nil {
		return err
	}
	if err := st.SaveInventory(ctx, b.Inventory); err != nil {
		return err
	}
	if err := st.SaveMenu(ctx, b.Menu); err != nil {
		return err
	}
	if err := st.SaveStaff(ctx, b.Staff); err != nil {
		return err
	}
	if err := st.SaveExpenses(ctx, b.Expenses); err != nil {
		return err
	}
	return st.SaveLogs(ctx, b.Logs)
}

package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// TxFunc runs inside a transaction bound to tx.
type TxFunc func(tx *gorm.DB) error

// WithTransaction runs fn in one transaction. The transaction is rolled back
// when fn returns an error or panics and committed otherwise.
func WithTransaction(ctx context.Context, db *gorm.DB, fn TxFunc) (err error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// countBy returns row counts of table grouped by column, limited to ids.
func countBy(db *gorm.DB, table, column string, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var results []struct {
		GroupKey string
		Count    int64
	}
	err := db.Table(table).
		Select(column+" AS group_key, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		counts[result.GroupKey] = result.Count
	}
	return counts, nil
}

// existingIDs returns the subset of ids that have a row in table.
func existingIDs(db *gorm.DB, table string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	err := db.Table(table).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

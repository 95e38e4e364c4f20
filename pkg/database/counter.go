package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertAndBump inserts row unless it already exists and, when it was inserted,
// increments table.column for id in the same transaction.
func InsertAndBump(tx *gorm.DB, row interface{}, table, id, column string) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if table != "" {
		if err := Bump(tx, table, id, column, 1); err != nil {
			return false, err
		}
	}
	return true, nil
}

// DeleteAndDrop is the inverse of InsertAndBump.
func DeleteAndDrop(tx *gorm.DB, query *gorm.DB, row interface{}, table, id, column string) (bool, error) {
	res := query.Delete(row)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if table != "" {
		if err := Bump(tx, table, id, column, -res.RowsAffected); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Bump adjusts a denormalized counter in SQL so concurrent writers never
// overwrite each other. Counters never go below zero.
func Bump(tx *gorm.DB, table, id, column string, delta int64) error {
	expr := gorm.Expr(column+" + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("GREATEST("+column+" - ?, 0)", -delta)
	}
	return tx.Table(table).Where("id = ?", id).UpdateColumn(column, expr).Error
}

package db

import (
	"fmt"
	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplyDeletePolicies 在删除 parent 表中 id 对应记录之前，
// 按 models.Relations 处理所有子表：Cascade 删除，SetNull 置空外键。
// 调用方应在事务中执行，随后再删除父记录。
func ApplyDeletePolicies(tx *gorm.DB, parent string, id uint) error {
	for _, rel := range models.RelationsOf(parent) {
		// 子表自身也可能是父表（posts -> comments），先递归处理
		if rel.OnDelete == models.Cascade {
			if err := cascadeChildren(tx, rel, id); err != nil {
				return err
			}
		}

		var err error
		switch rel.OnDelete {
		case models.Cascade:
			err = tx.Exec("DELETE FROM ? WHERE ? = ?",
				clause.Table{Name: rel.Child}, clause.Column{Name: rel.ForeignKey}, id).Error
		case models.SetNull:
			err = tx.Exec("UPDATE ? SET ? = NULL WHERE ? = ?",
				clause.Table{Name: rel.Child}, clause.Column{Name: rel.ForeignKey},
				clause.Column{Name: rel.ForeignKey}, id).Error
		default:
			err = fmt.Errorf("unknown delete policy %v", rel.OnDelete)
		}
		if err != nil {
			return fmt.Errorf("%s %s.%s: %w", rel.OnDelete, rel.Child, rel.ForeignKey, err)
		}
	}
	return nil
}

func cascadeChildren(tx *gorm.DB, rel models.Relation, parentID uint) error {
	if len(models.RelationsOf(rel.Child)) == 0 {
		return nil
	}
	var ids []uint
	if err := tx.Table(rel.Child).Where(clause.Eq{Column: clause.Column{Name: rel.ForeignKey}, Value: parentID}).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	for _, childID := range ids {
		if err := ApplyDeletePolicies(tx, rel.Child, childID); err != nil {
			return err
		}
	}
	return nil
}

package repository

import "gorm.io/gorm"

// rowExists reports whether a row of the given entity type exists. Update
// paths use it to re-check foreign keys before writing.
func rowExists(db *gorm.DB, entity any, id int64) (bool, error) {
	var count int64
	if err := db.Model(entity).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

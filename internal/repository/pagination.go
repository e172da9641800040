package repository

import "gorm.io/gorm"

// DefaultPageSize matches the page size of the original list views. It is
// also the upper bound; callers asking for more get clamped.
const DefaultPageSize = 100

func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}

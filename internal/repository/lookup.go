package repository

import (
	"errors"

	"gorm.io/gorm"
)

// firstOrNil 取第一条记录，未命中时返回 nil, nil
func firstOrNil[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	err := query.First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// countSlug 统计 slug 占用数，excludeID 非 0 时排除自身
func countSlug[T any](db *gorm.DB, slug string, excludeID uint) (int64, error) {
	query := db.Model(new(T)).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// exists 条件命中至少一行
func exists[T any](db *gorm.DB, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(new(T)).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

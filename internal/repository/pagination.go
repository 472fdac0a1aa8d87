package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// countAndFind 以同一查询条件先计数再分页取数，保证二者口径一致。
// 预加载只作用于取数阶段。
func countAndFind(query *gorm.DB, page, pageSize int, orders []string, dest interface{}, preloads ...string) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	find := query.Session(&gorm.Session{})
	for _, preload := range preloads {
		find = find.Preload(preload)
	}
	for _, order := range orders {
		find = find.Order(order)
	}
	if err := applyPagination(find, page, pageSize).Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

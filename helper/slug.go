package helper

import (
	"fmt"

	"restaurant_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func MakeMenuSlug(name string) string {
	return slug.Make(name)
}

// GenerateUniqueMenuSlug suffixes the slug until it is free in the catalog.
func GenerateUniqueMenuSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.MenuItem{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}

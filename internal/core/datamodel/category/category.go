package category

import "github.com/frahmantamala/finance-app/internal/core/datamodel"

type Category struct {
	datamodel.Base
	Name        string  `gorm:"column:name;type:varchar(100);not null"`
	Description *string `gorm:"column:description;type:varchar(500)"`
	Icon        string  `gorm:"column:icon;type:varchar(50);not null"`
	BadgeColor  string  `gorm:"column:badge_color;type:varchar(7);not null"`
	UserID      string  `gorm:"column:user_id;type:varchar(450);not null;index"`
	IsTemplate  bool    `gorm:"column:is_template;not null;index"`
}

func (Category) TableName() string {
	return "categories"
}

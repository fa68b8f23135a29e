package model

type Category struct {
	CategoryID   uint   `gorm:"primaryKey" json:"categoryId"`
	Name         string `gorm:"not null;type:varchar(100);unique" json:"name"`
	Slug         string `gorm:"not null;type:varchar(100);uniqueIndex" json:"slug"`
	Description  string `gorm:"type:text" json:"description"`
	Image        string `gorm:"type:varchar(500)" json:"image"`
	Featured     bool   `gorm:"not null;default:false" json:"featured"`
	DisplayOrder int    `gorm:"not null;default:0" json:"displayOrder"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
	BaseModel
}

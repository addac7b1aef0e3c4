package entity

import "time"

// Season представляет сезон лиги
type Season struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:50;not null;uniqueIndex" json:"name"`
	StartYear   int        `gorm:"not null" json:"start_year"`
	EndYear     int        `gorm:"not null" json:"end_year"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
}

// TableName определяет имя таблицы для GORM
func (Season) TableName() string {
	return "seasons"
}

package entity

// FootballClub представляет футбольный клуб
type FootballClub struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	LogoURL     string `gorm:"size:255;not null;default:''" json:"logo_url"`
	StadiumName string `gorm:"size:100;not null;default:''" json:"stadium_name"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName определяет имя таблицы для GORM
func (FootballClub) TableName() string {
	return "football_clubs"
}

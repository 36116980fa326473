package model

import "time"

type Note struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text;not null"`
	UserId    int64     `gorm:"not null;index:idx_notes_owner_created,priority:1"`
	IsDeleted bool      `gorm:"not null;default:false;index:idx_notes_owner_created,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_notes_owner_created,priority:3,sort:desc"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

package entity

import "time"

type Note struct {
	Id        int64
	Title     string
	Content   string
	UserId    int64
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool
}

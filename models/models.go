package models

import "time"

// DateLayout is how a post's publication date is stored and shown.
const DateLayout = "January 02, 2006"

type User struct {
	ID        uint   `gorm:"primary_key"`
	Email     string `gorm:"type:varchar(100);unique_index;not null"`
	Password  string `gorm:"type:varchar(200);not null"`
	Name      string `gorm:"type:varchar(100);not null"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	Posts     []Post    `gorm:"foreignkey:AuthorID;association_autoupdate:false;association_autocreate:false"`
	Comments  []Comment `gorm:"foreignkey:AuthorID;association_autoupdate:false;association_autocreate:false"`
}

type Post struct {
	ID        uint   `gorm:"primary_key"`
	Title     string `gorm:"type:varchar(250);unique_index;not null"`
	Subtitle  string `gorm:"type:varchar(250);not null"`
	Date      string `gorm:"type:varchar(250);not null"`
	Body      string `gorm:"type:text;not null"`
	ImgURL    string `gorm:"type:varchar(250);not null"`
	AuthorID  uint   `gorm:"index;not null"`
	Author    User   `gorm:"foreignkey:AuthorID;association_autoupdate:false;association_autocreate:false;association_save_reference:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Comments  []Comment `gorm:"foreignkey:PostID;association_autoupdate:false;association_autocreate:false"`
}

type Comment struct {
	ID        uint   `gorm:"primary_key"`
	Text      string `gorm:"type:text;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	Author    User   `gorm:"foreignkey:AuthorID;association_autoupdate:false;association_autocreate:false;association_save_reference:false"`
	PostID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

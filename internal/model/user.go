package model

import (
	"time"
)

type User struct {
	ID                 string    `db:"id" json:"id"`
	Email              string    `db:"email" json:"email"`
	FullName           *string   `db:"full_name" json:"full_name"`
	GoogleAccessToken  *string   `db:"google_access_token" json:"-"`
	GoogleRefreshToken *string   `db:"google_refresh_token" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// FitConnected reports whether a complete Google Fit token pair is stored.
func (u *User) FitConnected() bool {
	return u.GoogleAccessToken != nil && *u.GoogleAccessToken != "" &&
		u.GoogleRefreshToken != nil && *u.GoogleRefreshToken != ""
}

package entity

import "time"

// ApiToken is a bearer token for the "token" auth mode.
type ApiToken struct {
	TokenID   uint      `gorm:"column:token_id;primaryKey;autoIncrement"`
	Token     string    `gorm:"column:token;type:varchar(128);uniqueIndex;not null"`
	Label     *string   `gorm:"column:label;type:varchar(64)"`
	Revoked   uint16    `gorm:"column:revoked;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ApiToken) TableName() string {
	return "api_token"
}

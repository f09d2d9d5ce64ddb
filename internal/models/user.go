package models

// User represents a registered user of the catalog.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(100);not null" json:"email"`
	Login    string `gorm:"type:varchar(100);not null;index" json:"login"`
	Name     string `gorm:"type:varchar(100)" json:"name,omitempty"`
	Birthday Date   `json:"birthday"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

package models

// Film represents a catalog entry. Genres are attached through the
// film_genres join table; the MPA rating is a plain belongs-to.
type Film struct {
	BaseModel
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description string    `gorm:"type:varchar(200)" json:"description,omitempty"`
	ReleaseDate Date      `json:"releaseDate"`
	Duration    int       `gorm:"not null" json:"duration"`
	MpaID       uint      `gorm:"not null" json:"-"`
	Mpa         MpaRating `gorm:"foreignKey:MpaID" json:"mpa"`
	Genres      []Genre   `gorm:"many2many:film_genres;" json:"genres"`
}

// TableName specifies the table name for the Film model.
func (Film) TableName() string {
	return "films"
}

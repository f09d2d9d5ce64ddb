package models

// Genre is a fixed catalog value attached to films.
type Genre struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// TableName specifies the table name for the Genre model.
func (Genre) TableName() string {
	return "genres"
}

// MpaRating is the age-rating classification of a film (G, PG, ...).
type MpaRating struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(20);not null" json:"name"`
}

// TableName specifies the table name for the MpaRating model.
func (MpaRating) TableName() string {
	return "mpa_ratings"
}

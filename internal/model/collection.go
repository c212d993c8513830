package model

// Collection is a named grouping of words (e.g. "Unit 3", "Reading Mistakes").
type Collection struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

func (Collection) TableName() string {
	return "collections"
}

// DefaultCollectionName is the name of the collection seeded on first initialization.
const DefaultCollectionName = "Default"

type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type RenameCollectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

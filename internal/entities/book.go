package entities

const (
	StatusRead   = "Read"
	StatusQueued = "Queued"
)

// Book is a single row of the books table.
type Book struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"column:title;not null" json:"title"`
	Pages    int    `gorm:"column:pages;not null" json:"pages"`
	Read     bool   `gorm:"column:read;not null" json:"read"`
	Category string `gorm:"column:category" json:"category"`
}

func (Book) TableName() string {
	return "books"
}

// Status returns the human label of the read flag.
func (b Book) Status() string {
	return StatusLabel(b.Read)
}

// StatusLabel maps the read flag to "Read" or "Queued".
func StatusLabel(read bool) string {
	if read {
		return StatusRead
	}
	return StatusQueued
}

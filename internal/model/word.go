package model

// MistakeKind is the review mode under which a wrong answer was given.
type MistakeKind string

const (
	MistakeRecognition MistakeKind = "recognition"
	MistakeSpelling    MistakeKind = "spelling"
)

// Example is one usage example attached to a word.
type Example struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
	Audio       string `json:"audio,omitempty"`
}

// Word is one vocabulary entry with its lexical data and review statistics.
// The (headword, collection_id) pair is unique; the same headword may exist
// independently in two different collections.
type Word struct {
	ID           uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Headword     string        `gorm:"not null;uniqueIndex:idx_headword_collection" json:"headword"`
	CollectionID uint          `gorm:"not null;uniqueIndex:idx_headword_collection;index" json:"collection_id"`
	Phonetic     string        `json:"phonetic,omitempty"`
	Definitions  []string      `gorm:"serializer:json" json:"definitions"`
	Examples     []Example     `gorm:"serializer:json" json:"examples"`
	Audio        string        `json:"audio,omitempty"`
	CreatedAt    int64         `gorm:"autoCreateTime:milli" json:"created_at"`
	MistakeCount int           `gorm:"not null;default:0" json:"mistake_count"`
	MistakeKinds []MistakeKind `gorm:"serializer:json" json:"mistake_kinds"`
	// 0 until the word has been reviewed at least once.
	LastReviewedAt int64 `gorm:"not null;default:0" json:"last_reviewed_at"`
}

func (Word) TableName() string {
	return "words"
}

// HasMistakeKind reports whether kind is already in the word's mistake-kind set.
func (w *Word) HasMistakeKind(kind MistakeKind) bool {
	for _, k := range w.MistakeKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// WordDraft is the caller-supplied part of a word. IDs, timestamps and
// progress fields are stamped by the store.
type WordDraft struct {
	Headword     string    `json:"headword" validate:"required,min=1"`
	CollectionID uint      `json:"collection_id"`
	Phonetic     string    `json:"phonetic"`
	Definitions  []string  `json:"definitions"`
	Examples     []Example `json:"examples"`
	Audio        string    `json:"audio"`
}

// UpdateWordRequest carries a partial update; nil fields are left untouched.
type UpdateWordRequest struct {
	Phonetic    *string    `json:"phonetic,omitempty"`
	Definitions *[]string  `json:"definitions,omitempty"`
	Examples    *[]Example `json:"examples,omitempty"`
	Audio       *string    `json:"audio,omitempty"`
}

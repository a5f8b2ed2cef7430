// Package sequencerepo stores the per-(prefix, day) document counters.
package sequencerepo

// DocumentSequenceDTO is one counter row of document_sequences. Value is the
// last sequence handed out for the pair.
type DocumentSequenceDTO struct {
	Prefix string `gorm:"primaryKey;size:3"`
	Day    string `gorm:"primaryKey;size:8"`
	Value  int    `gorm:"not null"`
}

func (DocumentSequenceDTO) TableName() string {
	return "document_sequences"
}

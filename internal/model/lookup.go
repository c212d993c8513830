package model

// DictionaryEntry is the normalized result of one dictionary lookup.
type DictionaryEntry struct {
	Headword    string    `json:"headword"`
	Phonetic    string    `json:"phonetic"`
	Definitions []string  `json:"definitions"`
	Examples    []Example `json:"examples"`
	Audio       string    `json:"audio"`
}

// ImportRequest submits raw pasted text for the import pipeline.
type ImportRequest struct {
	Text         string `json:"text" validate:"required"`
	CollectionID uint   `json:"collection_id"`
}

// ImportReport is the full picture of one import batch. Failures are data,
// not errors: the batch always completes.
type ImportReport struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed"`
	Summary   string   `json:"summary"`
}

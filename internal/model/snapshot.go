package model

// Snapshot is the backup file format: a full dump of both entity sets.
// Import merges a snapshot into existing data; ids may be remapped on
// merge-conflict but record content is preserved.
type Snapshot struct {
	Collections []Collection `json:"collections"`
	Words       []Word       `json:"words"`
}

// RestoreReport summarizes a snapshot merge.
type RestoreReport struct {
	Collections int `json:"collections_added"`
	Words       int `json:"words_added"`
	Skipped     int `json:"words_skipped"` // first-write-wins duplicates
}

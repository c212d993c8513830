package model

// Setting is one row of the lightweight key-based settings store.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// Setting keys.
const (
	SettingProgressCursor = "progress_cursor" // id of the last word advanced past in "all" mode
	SettingDefaultMode    = "default_mode"
	SettingShowPhonetic   = "show_phonetic"
	SettingAutoplayAudio  = "autoplay_audio"
)

// Settings is the materialized view of the settings table returned to callers.
type Settings struct {
	ProgressCursor uint      `json:"progress_cursor"`
	DefaultMode    StudyMode `json:"default_mode"`
	ShowPhonetic   bool      `json:"show_phonetic"`
	AutoplayAudio  bool      `json:"autoplay_audio"`
}

// UpdateSettingsRequest carries a partial settings update.
type UpdateSettingsRequest struct {
	DefaultMode   *StudyMode `json:"default_mode,omitempty" validate:"omitempty,oneof=recognition spelling"`
	ShowPhonetic  *bool      `json:"show_phonetic,omitempty"`
	AutoplayAudio *bool      `json:"autoplay_audio,omitempty"`
}

package model

// StudyMode selects how a card is presented and answered.
type StudyMode string

const (
	ModeRecognition StudyMode = "recognition"
	ModeSpelling    StudyMode = "spelling"
)

// StudySource selects which words enter the queue.
type StudySource string

const (
	SourceAll      StudySource = "all"      // resumable forward scan by id
	SourceMistakes StudySource = "mistakes" // shuffled words with mistakes
)

// Session states.
type SessionState string

const (
	SessionInProgress SessionState = "in_progress"
	SessionEmpty      SessionState = "empty"
	SessionComplete   SessionState = "complete"
)

// Reasons for an empty queue, so the caller can show a distinct message.
const (
	EmptyReasonNoMistakes = "no_mistakes"
	EmptyReasonCaughtUp   = "caught_up"
)

// StudySession holds the computed review queue and the cursor within it.
// Per-card transient UI state (revealed, typed input) lives in the client.
type StudySession struct {
	ID           string       `json:"id"`
	Source       StudySource  `json:"source"`
	Mode         StudyMode    `json:"mode"`
	CollectionID *uint        `json:"collection_id,omitempty"`
	Queue        []Word       `json:"-"`
	Index        int          `json:"index"`
	State        SessionState `json:"state"`
	EmptyReason  string       `json:"empty_reason,omitempty"`
}

// Current returns the word at the session cursor, or nil when the session is
// not in progress.
func (s *StudySession) Current() *Word {
	if s.State != SessionInProgress || s.Index >= len(s.Queue) {
		return nil
	}
	return &s.Queue[s.Index]
}

type StartSessionRequest struct {
	Source       StudySource `json:"source" validate:"required,oneof=all mistakes"`
	CollectionID *uint       `json:"collection_id,omitempty"`
	Mode         StudyMode   `json:"mode,omitempty" validate:"omitempty,oneof=recognition spelling"`
}

// AnswerRequest is one answer action. Recognition mode sends Result
// ("known"/"unknown"); spelling mode sends the typed Input.
type AnswerRequest struct {
	Result string `json:"result,omitempty" validate:"omitempty,oneof=known unknown"`
	Input  string `json:"input,omitempty"`
}

// Card is the presentation of the current word, shaped per mode: spelling
// mode withholds the headword and phonetic until the answer is judged.
type Card struct {
	WordID      uint      `json:"word_id"`
	Headword    string    `json:"headword,omitempty"`
	Phonetic    string    `json:"phonetic,omitempty"`
	Definitions []string  `json:"definitions"`
	Examples    []Example `json:"examples,omitempty"`
	Audio       string    `json:"audio,omitempty"`
	Position    int       `json:"position"` // 0-based index in the queue
	QueueLength int       `json:"queue_length"`
}

// AnswerResponse reports the judgment of one answer and the next card.
type AnswerResponse struct {
	Correct        bool         `json:"correct"`
	Headword       string       `json:"headword"`            // revealed on spelling miss, echoed otherwise
	AdvanceAfterMs int          `json:"advance_after_ms"`    // client auto-advance hint, 0 = wait for user
	State          SessionState `json:"state"`
	Next           *Card        `json:"next,omitempty"`
}

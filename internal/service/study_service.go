package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"wordvault/internal/middleware"
	"wordvault/internal/model"
	"wordvault/internal/repository"
)

// How long the success feedback is shown before the client auto-advances in
// spelling mode.
const spellingAdvanceDelayMs = 1000

// StudyService computes review queues and drives the per-session state
// machine. Sessions live in memory with a TTL; the durable side effects
// (mistake stats, progress cursor) go through the store.
type StudyService interface {
	StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.StudySession, *model.Card, error)
	GetSession(ctx context.Context, id string) (*model.StudySession, *model.Card, error)
	Answer(ctx context.Context, id string, req *model.AnswerRequest) (*model.AnswerResponse, error)
}

type studyService struct {
	db       *gorm.DB
	wordRepo repository.WordRepository
	words    WordService
	settings SettingsService
	sessions *gocache.Cache

	// One review session is driven sequentially, but two HTTP requests can
	// still race on the same session; answers mutate, so serialize them.
	mu sync.Mutex
}

func NewStudyService(db *gorm.DB, wordRepo repository.WordRepository, words WordService, settings SettingsService, sessionTTL time.Duration) StudyService {
	return &studyService{
		db:       db,
		wordRepo: wordRepo,
		words:    words,
		settings: settings,
		sessions: gocache.New(sessionTTL, 10*time.Minute),
	}
}

func (s *studyService) StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.StudySession, *model.Card, error) {
	logger := middleware.GetLogger(ctx)

	mode, err := s.resolveMode(ctx, req.Mode)
	if err != nil {
		return nil, nil, err
	}

	session := &model.StudySession{
		ID:           uuid.NewString(),
		Source:       req.Source,
		Mode:         mode,
		CollectionID: req.CollectionID,
		State:        model.SessionInProgress,
	}

	switch req.Source {
	case model.SourceMistakes:
		words, err := s.wordRepo.FindMistakes(ctx, s.db, req.CollectionID)
		if err != nil {
			logger.Error("Error fetching mistake words", "error", err)
			return nil, nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to build study queue.", "", model.ErrInternalServer)
		}
		session.Queue = shuffled(words)
		session.EmptyReason = model.EmptyReasonNoMistakes

	case model.SourceAll:
		cursor, err := s.settings.Cursor(ctx)
		if err != nil {
			return nil, nil, err
		}
		words, err := s.wordRepo.FindAfter(ctx, s.db, cursor, req.CollectionID)
		if err != nil {
			logger.Error("Error fetching words after cursor", "error", err, "cursor", cursor)
			return nil, nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Failed to build study queue.", "", model.ErrInternalServer)
		}
		session.Queue = copied(words)
		session.EmptyReason = model.EmptyReasonCaughtUp

	default:
		return nil, nil, model.NewAppError("VALIDATION_ERROR", "Unknown study source.", "source", model.ErrInvalidInput)
	}

	if len(session.Queue) == 0 {
		session.State = model.SessionEmpty
	} else {
		session.EmptyReason = ""
	}

	s.sessions.Set(session.ID, session, gocache.DefaultExpiration)
	logger.Info("Study session started",
		"session_id", session.ID,
		"source", string(session.Source),
		"mode", string(session.Mode),
		"queue_length", len(session.Queue),
	)
	return session, s.makeCard(session), nil
}

// resolveMode: explicit override > stored user default > recognition.
func (s *studyService) resolveMode(ctx context.Context, override model.StudyMode) (model.StudyMode, error) {
	if override != "" {
		return override, nil
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings.DefaultMode != "" {
		return settings.DefaultMode, nil
	}
	return model.ModeRecognition, nil
}

func (s *studyService) GetSession(ctx context.Context, id string) (*model.StudySession, *model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupSession(id)
	if err != nil {
		return nil, nil, err
	}
	return session, s.makeCard(session), nil
}

func (s *studyService) Answer(ctx context.Context, id string, req *model.AnswerRequest) (*model.AnswerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lookupSession(id)
	if err != nil {
		return nil, err
	}
	if session.State != model.SessionInProgress {
		return nil, model.NewAppError("CONFLICT", "Session is not in progress.", "", model.ErrConflict)
	}

	word := session.Current()
	resp := &model.AnswerResponse{Headword: word.Headword}

	switch session.Mode {
	case model.ModeRecognition:
		switch req.Result {
		case "known":
			resp.Correct = true
			if session.Source == model.SourceMistakes {
				if err := s.words.ClearMistake(ctx, word.ID); err != nil {
					return nil, err
				}
			}
		case "unknown":
			if err := s.words.RecordMistake(ctx, word.ID, model.MistakeRecognition); err != nil {
				return nil, err
			}
		default:
			return nil, model.NewAppError("VALIDATION_ERROR", "Recognition answers need result known/unknown.", "result", model.ErrInvalidInput)
		}

	case model.ModeSpelling:
		if CheckSpelling(req.Input, word.Headword) {
			resp.Correct = true
			resp.AdvanceAfterMs = spellingAdvanceDelayMs
		} else {
			if err := s.words.RecordMistake(ctx, word.ID, model.MistakeSpelling); err != nil {
				return nil, err
			}
		}

	default:
		return nil, model.NewAppError("VALIDATION_ERROR", "Unknown study mode.", "mode", model.ErrInvalidInput)
	}

	// The forward scan always moves: in "all" mode the cursor follows every
	// answered word, correct or not.
	if session.Source == model.SourceAll {
		if err := s.settings.SetCursor(ctx, word.ID); err != nil {
			return nil, err
		}
	}

	session.Index++
	if session.Index >= len(session.Queue) {
		session.State = model.SessionComplete
	}
	s.sessions.Set(session.ID, session, gocache.DefaultExpiration)

	resp.State = session.State
	resp.Next = s.makeCard(session)
	return resp, nil
}

func (s *studyService) lookupSession(id string) (*model.StudySession, error) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, model.NewAppError("NOT_FOUND", "Study session not found or expired.", "", model.ErrNotFound)
	}
	return v.(*model.StudySession), nil
}

// makeCard shapes the current word for the session's mode. Spelling mode
// withholds everything that would give the answer away: only the definitions
// are shown until the input is judged.
func (s *studyService) makeCard(session *model.StudySession) *model.Card {
	word := session.Current()
	if word == nil {
		return nil
	}

	card := &model.Card{
		WordID:      word.ID,
		Definitions: word.Definitions,
		Position:    session.Index,
		QueueLength: len(session.Queue),
	}
	if session.Mode == model.ModeRecognition {
		card.Headword = word.Headword
		card.Phonetic = word.Phonetic
		card.Examples = word.Examples
		card.Audio = word.Audio
	}
	return card
}

// CheckSpelling judges a typed answer against the true headword:
// whitespace-trimmed, case-insensitive exact match.
func CheckSpelling(input, headword string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(headword))
}

// shuffled returns a uniformly shuffled copy (Fisher-Yates) so mistake
// review does not repeat the same order every session.
func shuffled(words []*model.Word) []model.Word {
	out := copied(words)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func copied(words []*model.Word) []model.Word {
	out := make([]model.Word, 0, len(words))
	for _, w := range words {
		out = append(out, *w)
	}
	return out
}

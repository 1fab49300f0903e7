package presentation

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// State is the feedback given to one meal of the current result set.
type State int

const (
	Neutral State = iota
	Liked
	Disliked
)

func (s State) String() string {
	switch s {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "neutral"
	}
}

// ErrNoPendingDislike is returned by ConfirmDislike when no dislike was requested.
var ErrNoPendingDislike = errors.New("no dislike awaiting confirmation")

// IndexError reports an index outside the current result set.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("meal index %d out of range [0,%d)", e.Index, e.Size)
}

// Feedback tracks like/dislike marks for one result set, keyed by zero-based
// meal position. An index is never liked and disliked at the same time.
// Feedback is not safe for concurrent use.
type Feedback struct {
	logger      *slog.Logger
	resultSetID uuid.UUID
	size        int
	liked       map[int]struct{}
	disliked    map[int]struct{}
	pending     int
	hasPending  bool
}

func NewFeedback(size int, logger *slog.Logger) *Feedback {
	f := &Feedback{logger: logger}
	f.Reset(size)
	return f
}

// Reset starts a new result set of the given size and forgets all marks.
func (f *Feedback) Reset(size int) {
	f.resultSetID = uuid.New()
	f.size = size
	f.liked = make(map[int]struct{})
	f.disliked = make(map[int]struct{})
	f.pending = 0
	f.hasPending = false
}

func (f *Feedback) ResultSetID() uuid.UUID {
	return f.resultSetID
}

func (f *Feedback) Size() int {
	return f.size
}

func (f *Feedback) State(i int) State {
	if _, ok := f.liked[i]; ok {
		return Liked
	}
	if _, ok := f.disliked[i]; ok {
		return Disliked
	}
	return Neutral
}

// Like marks meal i as liked and clears any dislike.
func (f *Feedback) Like(i int) error {
	if err := f.check(i); err != nil {
		return err
	}
	delete(f.disliked, i)
	f.liked[i] = struct{}{}
	f.log("Meal liked", i)
	return nil
}

// RequestDislike opens a confirmation for meal i. Nothing changes until
// ConfirmDislike is called.
func (f *Feedback) RequestDislike(i int) error {
	if err := f.check(i); err != nil {
		return err
	}
	f.pending = i
	f.hasPending = true
	return nil
}

// Pending returns the index awaiting dislike confirmation, if any.
func (f *Feedback) Pending() (int, bool) {
	return f.pending, f.hasPending
}

// ConfirmDislike marks the pending meal as disliked and clears any like. The
// reason is optional and only logged.
func (f *Feedback) ConfirmDislike(reason string) error {
	if !f.hasPending {
		return ErrNoPendingDislike
	}
	i := f.pending
	f.hasPending = false
	delete(f.liked, i)
	f.disliked[i] = struct{}{}
	f.log("Meal disliked", i, slog.String("reason", reason))
	return nil
}

// CancelDislike closes the confirmation and leaves the meal as it was.
func (f *Feedback) CancelDislike() {
	f.hasPending = false
}

// Regenerate is where a per-meal regeneration call would go. It only logs.
func (f *Feedback) Regenerate(i int) error {
	if err := f.check(i); err != nil {
		return err
	}
	f.log("Meal regeneration requested", i)
	return nil
}

func (f *Feedback) LikedIndices() []int {
	return sortedKeys(f.liked)
}

func (f *Feedback) DislikedIndices() []int {
	return sortedKeys(f.disliked)
}

func (f *Feedback) check(i int) error {
	if i < 0 || i >= f.size {
		return &IndexError{Index: i, Size: f.size}
	}
	return nil
}

func (f *Feedback) log(msg string, i int, attrs ...any) {
	if f.logger == nil {
		return
	}
	args := append([]any{
		slog.String("result_set", f.resultSetID.String()),
		slog.Int("index", i),
	}, attrs...)
	f.logger.Info(msg, args...)
}

func sortedKeys(m map[int]struct{}) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

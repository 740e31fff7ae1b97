package storage

import "github.com/vovakirdan/tui-snake/internal/snake"

// RecordBook binds a Store to a single record key so it can serve as the
// game's record store and run history.
type RecordBook struct {
	store  *Store
	key    string
	shared bool
}

// Book returns a RecordBook for key.
func (s *Store) Book(key string) *RecordBook {
	return &RecordBook{store: s, key: key}
}

// SharedBook returns a RecordBook for key that only ever raises the stored
// record. Use it when several games write the same key concurrently.
func (s *Store) SharedBook(key string) *RecordBook {
	return &RecordBook{store: s, key: key, shared: true}
}

// Key returns the record key.
func (b *RecordBook) Key() string {
	return b.key
}

// Record implements snake.RecordStore.
func (b *RecordBook) Record() (int, bool, error) {
	return b.store.Record(b.key)
}

// SetRecord implements snake.RecordStore.
func (b *RecordBook) SetRecord(score int) error {
	if b.shared {
		return b.store.RaiseRecord(b.key, score)
	}
	return b.store.SetRecord(b.key, score)
}

// SaveRun implements snake.ScoreHistory.
func (b *RecordBook) SaveRun(runID string, score, length int) error {
	_, err := b.store.SaveScore(b.key, runID, score, length)
	return err
}

// TopRuns returns the best runs stored under the book's key.
func (b *RecordBook) TopRuns(limit int) ([]ScoreEntry, error) {
	return b.store.TopScores(b.key, limit)
}

// Stats returns the run statistics for the book's key.
func (b *RecordBook) Stats() (*Stats, error) {
	return b.store.Stats(b.key)
}

// Clear deletes the book's record and runs.
func (b *RecordBook) Clear() error {
	return b.store.Clear(b.key)
}

// Ensure RecordBook implements the game's persistence contracts
var (
	_ snake.RecordStore  = (*RecordBook)(nil)
	_ snake.ScoreHistory = (*RecordBook)(nil)
)

package game

// HighScoreStore is the persistence collaborator. The session loads once
// when a session starts and saves only when the score improved.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// MemoryStore keeps the high score for the lifetime of the process.
type MemoryStore struct {
	Score int
	Saves int
}

func (m *MemoryStore) LoadHighScore() (int, error) { return m.Score, nil }

func (m *MemoryStore) SaveHighScore(score int) error {
	m.Score = score
	m.Saves++
	return nil
}

// Package store persists the high score as a small JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type record struct {
	HighScore int       `json:"high_score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore implements game.HighScoreStore on top of one file.
type FileStore struct {
	Path string
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, now: time.Now}
}

// DefaultPath is highscore.json under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "pitchspace", "highscore.json"), nil
}

// LoadHighScore returns 0 when no score has been saved yet.
func (s *FileStore) LoadHighScore() (int, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("decode high score %s: %w", s.Path, err)
	}
	if r.HighScore < 0 {
		return 0, fmt.Errorf("decode high score %s: negative score %d", s.Path, r.HighScore)
	}
	return r.HighScore, nil
}

// SaveHighScore replaces the file atomically: a crash leaves either the
// old score or the new one, never a torn file.
func (s *FileStore) SaveHighScore(score int) error {
	if score < 0 {
		return fmt.Errorf("save high score: negative score %d", score)
	}
	data, err := json.MarshalIndent(record{HighScore: score, UpdatedAt: s.now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".highscore-*.json")
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("save high score: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

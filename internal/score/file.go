package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/quizgolf/backend/internal/models"
)

const (
	scoreFileName   = "PlayerScoreData.json"
	savesFolderPath = "Saves"
)

// FileProvider keeps the leaderboard as a JSON array under <dir>/Saves.
type FileProvider struct {
	dir string
}

func NewFileProvider(dataDir string) *FileProvider {
	return &FileProvider{dir: filepath.Join(dataDir, savesFolderPath)}
}

// Path returns the score file location.
func (p *FileProvider) Path() string {
	return filepath.Join(p.dir, scoreFileName)
}

func (p *FileProvider) Load(ctx context.Context) ([]models.ScoreEntry, error) {
	data, err := os.ReadFile(p.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p.Path(), ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", p.Path(), err)
	}

	var entries []models.ScoreEntry
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, p.Path(), err)
	}
	return entries, nil
}

// Save rewrites the whole file, creating the directory on first use.
func (p *FileProvider) Save(ctx context.Context, entries []models.ScoreEntry) error {
	if _, err := os.Stat(p.dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(p.dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", p.dir, err)
		}
		log.Printf("[SCORE] Directory %s was created", p.dir)
	}

	if entries == nil {
		entries = []models.ScoreEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	// Replace atomically via rename.
	tmp := p.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p.Path()); err != nil {
		return fmt.Errorf("replace %s: %w", p.Path(), err)
	}
	return nil
}

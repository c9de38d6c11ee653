package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/quizgolf/backend/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	quizFolder       = "Quiz"
	quizJSONFileName = "Quiz.json"
	quizYAMLFileName = "Quiz.yaml"
)

// FileProvider reads the bundled quiz from <dir>/Quiz/Quiz.json, falling back
// to Quiz.yaml when no JSON file is present.
type FileProvider struct {
	dir string
}

func NewFileProvider(assetsDir string) *FileProvider {
	return &FileProvider{dir: assetsDir}
}

// Path returns the JSON quiz path.
func (p *FileProvider) Path() string {
	return filepath.Join(p.dir, quizFolder, quizJSONFileName)
}

func (p *FileProvider) LoadQuiz(ctx context.Context) (models.QuizSet, error) {
	jsonPath := p.Path()
	data, err := os.ReadFile(jsonPath)
	if err == nil {
		return DecodeJSON(data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return models.QuizSet{}, fmt.Errorf("read %s: %w", jsonPath, err)
	}

	yamlPath := filepath.Join(p.dir, quizFolder, quizYAMLFileName)
	data, err = os.ReadFile(yamlPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.QuizSet{}, fmt.Errorf("%s: %w", jsonPath, ErrNotFound)
		}
		return models.QuizSet{}, fmt.Errorf("read %s: %w", yamlPath, err)
	}
	return DecodeYAML(data)
}

// DecodeJSON parses a quiz document in the bundled JSON format.
func DecodeJSON(data []byte) (models.QuizSet, error) {
	var set models.QuizSet
	if err := json.Unmarshal(data, &set); err != nil {
		return models.QuizSet{}, fmt.Errorf("decode quiz json: %w", err)
	}
	return set, nil
}

// DecodeYAML parses a quiz document written in YAML.
func DecodeYAML(data []byte) (models.QuizSet, error) {
	var set models.QuizSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return models.QuizSet{}, fmt.Errorf("decode quiz yaml: %w", err)
	}
	return set, nil
}

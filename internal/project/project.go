package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/RollCut/internal/model"
)

// FileExtension is appended to project files saved by the CLI.
const FileExtension = ".rollcut"

// SaveProject writes a project, including its latest plan, as JSON.
func SaveProject(path string, proj model.Project) error {
	return writeJSON(path, proj)
}

// LoadProject reads a project file. Settings absent from the file fall back
// to DefaultSettings; settings a run could not use are rejected.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	proj := model.NewProject()
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if proj.Order.Pieces == nil {
		proj.Order.Pieces = []model.Piece{}
	}
	if err := proj.Settings.Validate(); err != nil {
		return model.Project{}, fmt.Errorf("project %s: %w", path, err)
	}
	return proj, nil
}

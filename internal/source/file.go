// Package source loads task records from task files and from the dashboard
// REST backend.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/cli, internal/schedule, internal/tui
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/teamcal/teamcal/internal/constants"
	"github.com/teamcal/teamcal/internal/domain"
	tcerrors "github.com/teamcal/teamcal/internal/errors"
)

// Format identifies a task file encoding.
type Format string

// Supported task file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Source loads task records.
type Source interface {
	Load(ctx context.Context) ([]domain.TaskRecord, error)
}

// FileSource reads task records from a JSON or YAML file.
// The file holds either a list of records or an object with a "tasks"
// (or "data") list, the two shapes the backend returns.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]domain.TaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(s.Path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, tcerrors.Wrapf(err, "failed to read task file %s", s.Path)
	}

	records, err := Decode(data, format)
	if err != nil {
		return nil, tcerrors.Wrapf(err, "task file %s", s.Path)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.Path).
		Str("format", string(format)).
		Int("records", len(records)).
		Msg("loaded task file")
	return records, nil
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.ExtJSON:
		return FormatJSON, nil
	case constants.ExtYAML, constants.ExtYML:
		return FormatYAML, nil
	default:
		return "", tcerrors.Wrapf(tcerrors.ErrUnsupportedInputFormat, "%q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// taskEnvelope is the object form of a task list.
type taskEnvelope struct {
	Tasks []domain.TaskRecord `json:"tasks" yaml:"tasks"`
	Data  []domain.TaskRecord `json:"data" yaml:"data"`
}

func (e taskEnvelope) records() []domain.TaskRecord {
	if e.Tasks != nil {
		return e.Tasks
	}
	if e.Data != nil {
		return e.Data
	}
	return []domain.TaskRecord{}
}

// Decode parses a task list in the given format.
func Decode(data []byte, format Format) ([]domain.TaskRecord, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, tcerrors.Wrapf(tcerrors.ErrUnsupportedInputFormat, "%q", format)
	}
}

func decodeJSON(data []byte) ([]domain.TaskRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []domain.TaskRecord{}, nil
	}

	if trimmed[0] == '[' {
		var records []domain.TaskRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, tcerrors.Wrapf(tcerrors.ErrInputParse, "json: %s", err.Error())
		}
		return records, nil
	}

	var env taskEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, tcerrors.Wrapf(tcerrors.ErrInputParse, "json: %s", err.Error())
	}
	return env.records(), nil
}

func decodeYAML(data []byte) ([]domain.TaskRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, tcerrors.Wrapf(tcerrors.ErrInputParse, "yaml: %s", err.Error())
	}
	if len(node.Content) == 0 {
		return []domain.TaskRecord{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var records []domain.TaskRecord
		if err := root.Decode(&records); err != nil {
			return nil, tcerrors.Wrapf(tcerrors.ErrInputParse, "yaml: %s", err.Error())
		}
		return records, nil
	case yaml.MappingNode:
		var env taskEnvelope
		if err := root.Decode(&env); err != nil {
			return nil, tcerrors.Wrapf(tcerrors.ErrInputParse, "yaml: %s", err.Error())
		}
		return env.records(), nil
	default:
		return nil, tcerrors.Wrap(tcerrors.ErrInputParse, "yaml: expected a list of tasks or a tasks key")
	}
}

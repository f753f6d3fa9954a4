package loaders

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/metadata"
	"gopkg.in/yaml.v3"
)

type SceneFormat int

const (
	SceneFormatUnknown SceneFormat = iota
	SceneFormatTOML
	SceneFormatYAML
)

// SceneFormatFromPath picks the format from the file extension.
func SceneFormatFromPath(path string) SceneFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return SceneFormatTOML
	case ".yaml", ".yml":
		return SceneFormatYAML
	}
	return SceneFormatUnknown
}

// ParseScene decodes and validates a scene description. Unknown fields are errors.
func ParseScene(data []byte, format SceneFormat) (*SceneDescription, error) {
	desc := &SceneDescription{}
	switch format {
	case SceneFormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(desc); err != nil {
			return nil, errors.Wrap(err, "decoding toml scene")
		}
	case SceneFormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(desc); err != nil {
			return nil, errors.Wrap(err, "decoding yaml scene")
		}
	default:
		return nil, errors.WithStack(core.ErrUnsupportedFormat)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

type SceneLoader struct{}

func (sl *SceneLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	format := SceneFormatFromPath(path)
	if format == SceneFormatUnknown {
		return nil, errors.Wrapf(core.ErrUnsupportedFormat, "scene '%s'", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene '%s'", path)
	}
	desc, err := ParseScene(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "scene '%s'", path)
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &metadata.Resource{
		Type:     assetType,
		Name:     desc.Name,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     desc,
	}, nil
}

func (sl *SceneLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return errors.WithStack(core.ErrNotFound)
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

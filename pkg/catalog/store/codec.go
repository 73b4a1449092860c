package store

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/tendant/simple-catalog/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// Codec converts a collection to and from its stored document.
type Codec interface {
	Name() string
	Encode(coll *catalog.Collection) ([]byte, error)
	Decode(data []byte) (*catalog.Collection, error)
}

// JSONCodec stores the collection as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(coll *catalog.Collection) ([]byte, error) {
	return json.MarshalIndent(coll, "", "  ")
}

func (JSONCodec) Decode(data []byte) (*catalog.Collection, error) {
	coll := catalog.NewCollection()
	if err := json.Unmarshal(data, coll); err != nil {
		return nil, err
	}
	return coll, nil
}

// YAMLCodec stores the collection as YAML.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(coll *catalog.Collection) ([]byte, error) {
	return yaml.Marshal(coll)
}

func (YAMLCodec) Decode(data []byte) (*catalog.Collection, error) {
	coll := catalog.NewCollection()
	if err := yaml.Unmarshal(data, coll); err != nil {
		return nil, err
	}
	return coll, nil
}

// CodecForPath picks YAML for .yaml and .yml files and JSON otherwise.
func CodecForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	}
	return JSONCodec{}
}

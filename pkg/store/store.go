// Package store reads and writes the intersection record file.
package store

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

const (
	// Data properties a document may declare.
	PropTrafficDensity = "trafficDensity"
	PropGreenTime      = "greenTime"

	// ClassTrafficLight marks individuals that become controllers.
	ClassTrafficLight = "TrafficLight"
)

// ErrUnsupportedFormat is returned for a path whose extension has no codec.
var ErrUnsupportedFormat = errors.New("unsupported store format")

// Individual is one named record in the store. Nil fields are absent.
type Individual struct {
	Name           string `yaml:"name" json:"name" msgpack:"name"`
	Class          string `yaml:"class" json:"class" msgpack:"class"`
	TrafficDensity *int   `yaml:"trafficDensity,omitempty" json:"trafficDensity,omitempty" msgpack:"trafficDensity,omitempty"`
	GreenTime      *int   `yaml:"greenTime,omitempty" json:"greenTime,omitempty" msgpack:"greenTime,omitempty"`
}

// IsTrafficLight reports whether the record's class names a traffic light.
func (i *Individual) IsTrafficLight() bool {
	return strings.Contains(i.Class, ClassTrafficLight)
}

// Meta records which run last saved the document and when.
type Meta struct {
	RunID   string    `yaml:"runID,omitempty" json:"runID,omitempty" msgpack:"runID,omitempty"`
	SavedAt time.Time `yaml:"savedAt,omitempty" json:"savedAt,omitempty" msgpack:"savedAt,omitempty"`
}

// Document is the whole store file.
type Document struct {
	Meta        Meta         `yaml:"meta,omitempty" json:"meta,omitempty" msgpack:"meta,omitempty"`
	Properties  []string     `yaml:"properties" json:"properties" msgpack:"properties"`
	Individuals []Individual `yaml:"individuals" json:"individuals" msgpack:"individuals"`
}

// Declares reports whether prop is a property the store knows about.
func (d *Document) Declares(prop string) bool {
	return slices.Contains(d.Properties, prop)
}

// Init returns a document declaring both properties with n traffic lights
// that carry no values yet.
func Init(n int) *Document {
	doc := &Document{Properties: []string{PropTrafficDensity, PropGreenTime}}
	for i := 1; i <= n; i++ {
		doc.Individuals = append(doc.Individuals, Individual{
			Name:  fmt.Sprintf("%s_%d", ClassTrafficLight, i),
			Class: ClassTrafficLight,
		})
	}
	return doc
}

// Load reads the document at path using the codec matching its extension.
func Load(path string) (*Document, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store %q: %w", path, err)
	}
	doc := &Document{}
	if err := codec.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode store %q: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path, replacing any existing file.
func Save(path string, doc *Document) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}
	data, err := codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode store %q: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store %q: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace store %q: %w", path, err)
	}
	return nil
}

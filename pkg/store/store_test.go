package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleDocument() *Document {
	return &Document{
		Meta:       Meta{RunID: "run-1", SavedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		Properties: []string{PropTrafficDensity, PropGreenTime},
		Individuals: []Individual{
			{Name: "Main_1st", Class: "TrafficLight", TrafficDensity: intPtr(12), GreenTime: intPtr(30)},
			{Name: "Depot", Class: "Building"},
			{Name: "Main_2nd", Class: "SmartTrafficLight", GreenTime: intPtr(45)},
		},
	}
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml", ".msgpack", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store"+ext)
			want := sampleDocument()

			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
			_, err = os.Stat(path + ".tmp")
			assert.True(t, errors.Is(err, os.ErrNotExist), "temporary file should be renamed away")
		})
	}
}

func TestLoadYAMLWithMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TrafficSystem.yaml")
	data := `properties: [trafficDensity]
individuals:
  - name: TL_A
    class: TrafficLight
    trafficDensity: 22
  - name: TL_B
    class: TrafficLight
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Individuals, 2)

	assert.Equal(t, 22, *doc.Individuals[0].TrafficDensity)
	assert.Nil(t, doc.Individuals[0].GreenTime)
	assert.Nil(t, doc.Individuals[1].TrafficDensity)
	assert.True(t, doc.Declares(PropTrafficDensity))
	assert.False(t, doc.Declares(PropGreenTime))
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Load("TrafficSystem.owl")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	err = Save(filepath.Join(t.TempDir(), "out.txt"), sampleDocument())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to decode store")
}

func TestInit(t *testing.T) {
	doc := Init(3)

	assert.Equal(t, []string{PropTrafficDensity, PropGreenTime}, doc.Properties)
	require.Len(t, doc.Individuals, 3)
	for i, ind := range doc.Individuals {
		assert.True(t, ind.IsTrafficLight(), "individual %d", i)
		assert.Nil(t, ind.TrafficDensity)
		assert.Nil(t, ind.GreenTime)
	}
	assert.Equal(t, "TrafficLight_2", doc.Individuals[1].Name)
}

func TestIsTrafficLight(t *testing.T) {
	assert.True(t, (&Individual{Class: "TrafficLight"}).IsTrafficLight())
	assert.True(t, (&Individual{Class: "SmartTrafficLight"}).IsTrafficLight())
	assert.False(t, (&Individual{Class: "Road"}).IsTrafficLight())
}

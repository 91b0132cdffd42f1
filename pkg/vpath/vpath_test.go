// pkg/vpath/vpath_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test virtual path normalization and key derivation

package vpath_test

import (
	"testing"

	"github.com/modfold/modfold/pkg/vpath"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "libraries/jobs.xml", "libraries/jobs.xml"},
		{"backslashes", `assets\props\SurfaceElements\macros\thing.xml`, "assets/props/SurfaceElements/macros/thing.xml"},
		{"leading_slash", "/libraries/jobs.xml", "libraries/jobs.xml"},
		{"leading_dot_slash", "./libraries/jobs.xml", "libraries/jobs.xml"},
		{"case_preserved", "Libraries/Jobs.XML", "Libraries/Jobs.XML"},
		{"dot_segments", "libraries/./sub/../jobs.xml", "libraries/jobs.xml"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vpath.Normalize(tt.in))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "libraries/jobs.xml", vpath.Key("Libraries/Jobs.XML"))
	assert.Equal(t, vpath.Key(`t\0001-L044.xml`), vpath.Key("T/0001-l044.XML"),
		"keys are separator- and case-insensitive")
}

func TestTopDir(t *testing.T) {
	assert.Equal(t, "libraries", vpath.TopDir("Libraries/jobs.xml"))
	assert.Equal(t, "", vpath.TopDir("version.dat"))
}

func TestIsXML(t *testing.T) {
	assert.True(t, vpath.IsXML("libraries/jobs.xml"))
	assert.True(t, vpath.IsXML("md/Story.XML"))
	assert.False(t, vpath.IsXML("sfx/boom.wav"))
	assert.False(t, vpath.IsXML("version.dat"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "extensions/mymod/libraries/jobs.xml",
		vpath.Join("extensions", "mymod", "libraries", "jobs.xml"))
}

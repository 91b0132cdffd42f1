// pkg/extension/descriptor_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test content.xml descriptor parsing

package extension_test

import (
	"testing"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptorFull(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="utf-8"?>
<content id="ws_fleet_pack" name="Fleet Pack" description="Adds fleets" author="someone" version="142" date="2024-01-15" save="false" enabled="1">
  <dependency version="100" id="base_lib" optional="false"/>
  <dependency id="nice_to_have" optional="true"/>
  <dependency version="1"/>
  <text language="44" name="Fleet Pack"/>
</content>`)

	d, err := extension.ParseDescriptor(data)
	require.NoError(t, err)
	assert.Equal(t, "ws_fleet_pack", d.ID)
	assert.Equal(t, "Fleet Pack", d.Name)
	assert.Equal(t, "142", d.Version)
	assert.True(t, d.EnabledByDefault)
	require.Len(t, d.Dependencies, 2, "dependency without id is skipped")
	assert.Equal(t, extension.Dependency{ID: "base_lib", Optional: false}, d.Dependencies[0])
	assert.Equal(t, extension.Dependency{ID: "nice_to_have", Optional: true}, d.Dependencies[1])
}

func TestParseDescriptorEnabledFlag(t *testing.T) {
	cases := []struct {
		name    string
		attr    string
		enabled bool
	}{
		{"missing defaults true", ``, true},
		{"literal true", ` enabled="true"`, true},
		{"uppercase TRUE", ` enabled="TRUE"`, true},
		{"numeric one", ` enabled="1"`, true},
		{"literal false", ` enabled="false"`, false},
		{"uppercase False", ` enabled="False"`, false},
		{"numeric zero", ` enabled="0"`, false},
		{"junk value", ` enabled="yes"`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := extension.ParseDescriptor([]byte(`<content id="x"` + tc.attr + `/>`))
			require.NoError(t, err)
			assert.Equal(t, tc.enabled, d.EnabledByDefault)
		})
	}
}

func TestParseDescriptorErrors(t *testing.T) {
	_, err := extension.ParseDescriptor([]byte(`<content name="no id"/>`))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtensionParse))

	_, err = extension.ParseDescriptor([]byte(`<wrong id="x"/>`))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtensionParse))

	_, err = extension.ParseDescriptor([]byte(`not xml at all <<<`))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExtensionParse))
}

// pkg/location/location_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp files
// PURPOSE: Test archive discovery, loose/archive precedence, and enumeration

package location_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modfold/modfold/pkg/catalog"
	"github.com/modfold/modfold/pkg/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packInto(t *testing.T, root, catName string, entries ...catalog.WriteEntry) {
	t.Helper()
	require.NoError(t, catalog.Write(filepath.Join(root, catName), entries))
}

func writeLoose(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	osPath := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(osPath), 0755))
	require.NoError(t, os.WriteFile(osPath, data, 0644))
}

func TestDiscoveryStopsAtFirstGap(t *testing.T) {
	root := t.TempDir()
	packInto(t, root, "01.cat", catalog.WriteEntry{Path: "libraries/a.xml", Data: []byte("one")})
	packInto(t, root, "02.cat", catalog.WriteEntry{Path: "libraries/b.xml", Data: []byte("two")})
	// 03 missing; 04 must not be discovered.
	packInto(t, root, "04.cat", catalog.WriteEntry{Path: "libraries/c.xml", Data: []byte("four")})

	v := location.NewView(root)
	assert.True(t, v.Has("libraries/a.xml"))
	assert.True(t, v.Has("libraries/b.xml"))
	assert.False(t, v.Has("libraries/c.xml"), "catalog past the gap is invisible")
}

func TestLaterCatalogWins(t *testing.T) {
	root := t.TempDir()
	packInto(t, root, "01.cat", catalog.WriteEntry{Path: "libraries/jobs.xml", Data: []byte("old")})
	packInto(t, root, "02.cat", catalog.WriteEntry{Path: "libraries/jobs.xml", Data: []byte("new")})

	hit, err := location.NewView(root).Find("libraries/jobs.xml")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, []byte("new"), hit.Data)
	assert.Equal(t, filepath.Join(root, "02.cat"), hit.Source.Catalog)
}

func TestSubstituteArchivesTakePrecedence(t *testing.T) {
	root := t.TempDir()
	packInto(t, root, "ext_01.cat", catalog.WriteEntry{Path: "libraries/jobs.xml", Data: []byte("patch")})
	packInto(t, root, "subst_01.cat", catalog.WriteEntry{Path: "libraries/jobs.xml", Data: []byte("subst")})

	hit, err := location.NewView(root).Find("libraries/jobs.xml")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, []byte("subst"), hit.Data)
	assert.True(t, hit.Source.Substitute)

	// The ext_ entry is still reachable when subst does not cover a path.
	packInto(t, root, "ext_01.cat", catalog.WriteEntry{Path: "libraries/other.xml", Data: []byte("only-ext")})
	hit, err = location.NewView(root).Find("libraries/other.xml")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.False(t, hit.Source.Substitute)
}

func TestLooseBeatsArchiveByDefault(t *testing.T) {
	root := t.TempDir()
	packInto(t, root, "01.cat", catalog.WriteEntry{Path: "libraries/jobs.xml", Data: []byte("packed")})
	writeLoose(t, root, "libraries/jobs.xml", []byte("loose"))

	hit, err := location.NewView(root).Find("libraries/jobs.xml")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, []byte("loose"), hit.Data)
	assert.True(t, hit.Source.Loose())

	hit, err = location.NewView(root, location.WithLooseFirst(false)).Find("libraries/jobs.xml")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, []byte("packed"), hit.Data)
	assert.False(t, hit.Source.Loose())
}

func TestFindMissIsNotAnError(t *testing.T) {
	v := location.NewView(t.TempDir())
	hit, err := v.Find("libraries/nothing.xml")
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestCaseInsensitiveLookupPreservesDisplayCase(t *testing.T) {
	root := t.TempDir()
	packInto(t, root, "01.cat", catalog.WriteEntry{Path: "Libraries/Jobs.xml", Data: []byte("x")})

	hit, err := location.NewView(root).Find("LIBRARIES/JOBS.XML")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Libraries/Jobs.xml", hit.Source.Path)
}

func TestWhitelistRestrictsLooseScan(t *testing.T) {
	root := t.TempDir()
	writeLoose(t, root, "libraries/jobs.xml", []byte("yes"))
	writeLoose(t, root, "screenshots/shot.png", []byte("no"))
	writeLoose(t, root, "content.xml", []byte("descriptor"))

	v := location.NewView(root, location.WithWhitelist([]string{"libraries", "t"}))
	assert.True(t, v.Has("libraries/jobs.xml"))
	assert.False(t, v.Has("screenshots/shot.png"))
	assert.True(t, v.Has("content.xml"), "root-level files stay addressable")
}

func TestCorruptedCatalogDisablesAllArchives(t *testing.T) {
	root := t.TempDir()
	packInto(t, root, "01.cat", catalog.WriteEntry{Path: "libraries/jobs.xml", Data: []byte("packed")})
	require.NoError(t, os.WriteFile(filepath.Join(root, "02.cat"), []byte("garbage index\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "02.dat"), nil, 0644))
	writeLoose(t, root, "libraries/loose.xml", []byte("still here"))

	v := location.NewView(root)
	assert.False(t, v.Has("libraries/jobs.xml"), "healthy catalog is disabled too")

	hit, err := v.Find("libraries/loose.xml")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, []byte("still here"), hit.Data)
}

func TestEnumerate(t *testing.T) {
	root := t.TempDir()
	packInto(t, root, "01.cat",
		catalog.WriteEntry{Path: "libraries/jobs.xml", Data: []byte("a")},
		catalog.WriteEntry{Path: "libraries/wares.xml", Data: []byte("b")},
		catalog.WriteEntry{Path: "t/0001-L044.xml", Data: []byte("c")},
	)
	writeLoose(t, root, "libraries/jobs.xml", []byte("loose override"))
	writeLoose(t, root, "libraries/extra.xml", []byte("d"))
	writeLoose(t, root, "screenshots/shot.png", []byte("e"))

	v := location.NewView(root, location.WithWhitelist([]string{"libraries", "t"}))

	all := v.Enumerate("")
	assert.ElementsMatch(t, []string{
		"libraries/extra.xml",
		"libraries/jobs.xml",
		"libraries/wares.xml",
		"t/0001-L044.xml",
	}, all, "whitelist filters enumeration")

	libs := v.Enumerate("libraries/")
	assert.Equal(t, []string{
		"libraries/extra.xml",
		"libraries/jobs.xml",
		"libraries/wares.xml",
	}, libs, "prefix filter applies and output is sorted")
}

package seginfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateNameAndParseVersionRoundTrip(t *testing.T) {
	name := GenerateName(17)
	require.Equal(t, "17.log", name)

	version, err := ParseVersion(filepath.Join("/data/log", name))
	require.NoError(t, err)
	require.EqualValues(t, 17, version)
}

func TestParseVersionRejectsBadExtension(t *testing.T) {
	_, err := ParseVersion("17.txt")
	require.Error(t, err)
}

func TestParseVersionRejectsNonNumericStem(t *testing.T) {
	_, err := ParseVersion("active.log")
	require.Error(t, err)
}

func TestListVersionsOnMissingDirectory(t *testing.T) {
	versions, err := ListVersions(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Empty(t, versions)
}

func TestListVersionsSortsAscending(t *testing.T) {
	dir := t.TempDir()
	for _, v := range []uint64{5, 1, 17, 2} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, GenerateName(v)), []byte("{}\n"), 0644))
	}

	versions, err := ListVersions(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 5, 17}, versions)
}

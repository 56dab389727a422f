package snapshot

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAddAndMerge(t *testing.T) {
	s := NewSet("bob")

	assert.Equal(t, 2, s.Add("alice", "bob", "carol", "alice"))
	assert.Equal(t, 3, s.Len())

	other := NewSet("carol", "dave")
	before := s.Len()
	added := s.Merge(other)
	assert.Equal(t, 1, added)
	assert.Equal(t, before+added, s.Len())
	assert.True(t, s.Contains("dave"))
	assert.Equal(t, 2, other.Len(), "merge must not mutate the argument")
}

func TestMergeEmptyIsIdentity(t *testing.T) {
	s := NewSet("alice", "bob")

	assert.Equal(t, 0, s.Merge(NewSet()))
	assert.Equal(t, 0, s.Merge(nil))
	assert.Equal(t, []string{"alice", "bob"}, s.Sorted())
}

func TestZeroValueSet(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.Add("x"))
	assert.True(t, s.Contains("x"))

	var nilSet *Set
	assert.Equal(t, 0, nilSet.Len())
	assert.False(t, nilSet.Contains("x"))
	assert.Nil(t, nilSet.Sorted())
}

func TestCaseIsPreserved(t *testing.T) {
	s := NewSet("Alice", "alice")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"Alice", "alice"}, s.Sorted())
}

func TestDifferenceAndClone(t *testing.T) {
	a := NewSet("alice", "bob", "carol")
	b := NewSet("bob", "carol", "dave")

	assert.Equal(t, []string{"alice"}, a.Difference(b))
	assert.Equal(t, []string{"dave"}, b.Difference(a))
	assert.Empty(t, a.Difference(a))

	c := a.Clone()
	c.Add("zed")
	assert.False(t, a.Contains("zed"))
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewSet("carol", "alice", "bob")))
	assert.Equal(t, "alice\nbob\ncarol", buf.String())

	decoded, err := Decode(strings.NewReader("  bob \n\nalice\r\nbob\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, decoded.Sorted())
}

func TestEncodeRejectsUnstorableIdentifiers(t *testing.T) {
	for _, id := range []string{" bob", "a\nb", "carol\t", ""} {
		t.Run(id, func(t *testing.T) {
			assert.False(t, Valid(id))

			var buf bytes.Buffer
			err := Encode(&buf, NewSet("alice", id))
			require.Error(t, err)
			assert.Empty(t, buf.String(), "nothing is written for a rejected set")
		})
	}
	assert.True(t, Valid("first.last_99"))
}

func TestWriteRejectedSetKeepsPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "followers.txt")
	require.NoError(t, Write(path, NewSet("alice")))

	require.Error(t, Write(path, NewSet("alice", "a\nb")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", string(data))
	assert.NoFileExists(t, path+".tmp")
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "followers.txt")

	// insertion order must not matter
	original := NewSet()
	for _, id := range []string{"zoe", "adam", "mike", "Bea", "adam"} {
		original.Add(id)
	}

	require.NoError(t, Write(path, original))

	loaded, err := Read(path)
	require.NoError(t, err)
	if diff := cmp.Diff(original.Sorted(), loaded.Sorted()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not remain")
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "followers.txt")

	require.NoError(t, Write(path, NewSet("a", "b", "c")))
	require.NoError(t, Write(path, NewSet("d")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "d", string(data))
}

func TestWriteEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "followers.txt")
	require.NoError(t, Write(path, NewSet()))

	loaded, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

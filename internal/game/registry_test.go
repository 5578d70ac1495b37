package game

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateRoomCodeFormat(t *testing.T) {
	reg := NewRegistry()
	codePattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rm := reg.CreateRoom()
		require.Regexp(t, codePattern, rm.Code)
		require.False(t, seen[rm.Code], "duplicate code %s", rm.Code)
		seen[rm.Code] = true
		require.Same(t, rm, reg.Lookup(rm.Code))
	}
}

func TestLookupUnknownCode(t *testing.T) {
	reg := NewRegistry()
	require.Nil(t, reg.Lookup("NOPE00"))
}

func TestDestroyRemovesRoom(t *testing.T) {
	reg := NewRegistry()
	rm := reg.CreateRoom()

	reg.Destroy(rm.Code)
	require.Nil(t, reg.Lookup(rm.Code))

	// Destroying twice is harmless.
	reg.Destroy(rm.Code)
}

func TestFindByConn(t *testing.T) {
	reg := NewRegistry()
	rm := reg.CreateRoom()
	c := &fakeConn{}
	_, err := rm.Join("Ann", c, 0)
	require.NoError(t, err)

	require.Same(t, rm, reg.FindByConn(c))
	require.Nil(t, reg.FindByConn(&fakeConn{}))
}

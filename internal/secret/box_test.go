package secret

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxRoundTrip(t *testing.T) {
	box, err := NewBox("correct horse battery staple")
	require.NoError(t, err)

	sealed, err := box.Seal([]byte(`{"access_token":"abc"}`))
	require.NoError(t, err)

	opened, err := box.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"access_token":"abc"}`), opened)
}

func TestBoxEmptyPassphrase(t *testing.T) {
	_, err := NewBox("")
	require.ErrorIs(t, err, ErrEmptyKey)
}

func TestBoxTamperedPayload(t *testing.T) {
	box, err := NewBox("key")
	require.NoError(t, err)

	sealed, err := box.Seal([]byte("payload"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = box.Open(sealed)
	require.ErrorIs(t, err, ErrOpenFailed)
}

func TestBoxWrongKey(t *testing.T) {
	box1, err := NewBox("key one")
	require.NoError(t, err)
	box2, err := NewBox("key two")
	require.NoError(t, err)

	sealed, err := box1.Seal([]byte("payload"))
	require.NoError(t, err)

	_, err = box2.Open(sealed)
	require.ErrorIs(t, err, ErrOpenFailed)
}

func TestBoxShortPayload(t *testing.T) {
	box, err := NewBox("key")
	require.NoError(t, err)

	_, err = box.Open([]byte("too short"))
	require.ErrorIs(t, err, ErrShortPayload)
}

func TestBoxNoncesDiffer(t *testing.T) {
	box, err := NewBox("key")
	require.NoError(t, err)

	first, err := box.Seal([]byte("payload"))
	require.NoError(t, err)
	second, err := box.Seal([]byte("payload"))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

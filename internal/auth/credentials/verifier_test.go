package credentials

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestVerifierPolicies(t *testing.T) {
	aesgcm, err := NewAESGCM(testKey(t))
	require.NoError(t, err)

	verifiers := []Verifier{
		Plaintext{},
		SHA256{},
		Bcrypt{},
		aesgcm,
	}

	for _, v := range verifiers {
		t.Run(v.Name(), func(t *testing.T) {
			material, err := v.Material("wonderland")
			require.NoError(t, err)
			require.NotEmpty(t, material)

			assert.NoError(t, v.Verify("wonderland", material))
			assert.ErrorIs(t, v.Verify("wrongpass", material), ErrMismatch)
			assert.ErrorIs(t, v.Verify("", material), ErrMismatch)
		})
	}
}

func TestNewSelectsPolicy(t *testing.T) {
	for _, policy := range []string{PolicyPlaintext, PolicySHA256, PolicyBcrypt} {
		v, err := New(policy, nil)
		require.NoError(t, err)
		assert.Equal(t, policy, v.Name())
	}

	v, err := New(PolicyAESGCM, testKey(t))
	require.NoError(t, err)
	assert.Equal(t, PolicyAESGCM, v.Name())

	_, err = New("argon2", nil)
	assert.Error(t, err)
}

func TestAESGCMRequires32ByteKey(t *testing.T) {
	_, err := NewAESGCM([]byte("short"))
	assert.Error(t, err)
}

func TestAESGCMMaterialIsRandomized(t *testing.T) {
	aesgcm, err := NewAESGCM(testKey(t))
	require.NoError(t, err)

	first, err := aesgcm.Material("wonderland")
	require.NoError(t, err)
	second, err := aesgcm.Material("wonderland")
	require.NoError(t, err)

	// fresh nonce per registration, both still verify
	assert.NotEqual(t, first, second)
	assert.NoError(t, aesgcm.Verify("wonderland", first))
	assert.NoError(t, aesgcm.Verify("wonderland", second))
}

func TestAESGCMRejectsTamperedMaterial(t *testing.T) {
	aesgcm, err := NewAESGCM(testKey(t))
	require.NoError(t, err)

	material, err := aesgcm.Material("wonderland")
	require.NoError(t, err)

	material[len(material)-1] ^= 0xff
	assert.ErrorIs(t, aesgcm.Verify("wonderland", material), ErrMismatch)

	assert.ErrorIs(t, aesgcm.Verify("wonderland", []byte("x")), ErrMismatch)
}

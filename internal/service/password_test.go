package service_test

import (
	"strings"
	"testing"

	"github.com/limbo/gratudiary/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashers(t *testing.T) {
	hashers := map[string]service.PasswordHasher{
		"bcrypt":   service.BcryptHasher{Cost: 4},
		"argon2id": service.Argon2Hasher{},
	}
	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("secret1")
			require.NoError(t, err)
			assert.NotEqual(t, "secret1", hash)
			assert.True(t, h.Verify("secret1", hash))
			assert.False(t, h.Verify("secret2", hash))
		})
	}
}

func TestHashersVerifyEachOther(t *testing.T) {
	argonHash, err := service.Argon2Hasher{}.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(argonHash, "$argon2id$"))
	assert.True(t, service.BcryptHasher{Cost: 4}.Verify("secret1", argonHash))

	bcryptHash, err := service.BcryptHasher{Cost: 4}.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, service.Argon2Hasher{}.Verify("secret1", bcryptHash))
}

func TestMalformedHashNeverVerifies(t *testing.T) {
	h := service.Argon2Hasher{}
	assert.False(t, h.Verify("secret1", "$argon2id$broken"))
	assert.False(t, h.Verify("secret1", "plain"))
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := service.NewPasswordHasher("")
	require.NoError(t, err)
	assert.IsType(t, service.BcryptHasher{}, h)

	h, err = service.NewPasswordHasher("ARGON2ID")
	require.NoError(t, err)
	assert.IsType(t, service.Argon2Hasher{}, h)

	_, err = service.NewPasswordHasher("md5")
	assert.Error(t, err)
}

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestCodec_WireNames(t *testing.T) {
	c := jsonCodec{}

	b, err := c.Marshal(&RegisterRequest{Email: "a@b.com", FirstName: "A", LastName: "B", Password: "p", ConfirmPassword: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.com","first_name":"A","last_name":"B","password":"p","confirm_password":"p"}`, string(b))

	b, err = c.Marshal(&TokenResponse{Message: "Invalid Token"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Invalid Token"}`, string(b))

	var in RenewRequest
	require.NoError(t, c.Unmarshal([]byte(`{"access_token":"a","refresh_token":"r"}`), &in))
	assert.Equal(t, RenewRequest{AccessToken: "a", RefreshToken: "r"}, in)
}

func TestFullMethodNames(t *testing.T) {
	assert.Equal(t, "/userboarding.v1.AuthService/RenewAccessToken", FullMethodRenewAccessToken)
	assert.Len(t, AuthServiceDesc.Methods, 4)
}

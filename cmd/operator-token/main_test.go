package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HotelGolang/internal/entity"
	jwtPkg "HotelGolang/pkg/jwt"
)

func TestRun_IssuesVerifiableToken(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	var out bytes.Buffer
	err := run([]string{"-id", "op-7", "-email", "ops@hotel.test", "-role", "admin"}, &out)
	require.NoError(t, err)

	raw := strings.TrimSpace(out.String())
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)

	operator, err := jwtPkg.OperatorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, entity.OperatorLoginData{ID: "op-7", Email: "ops@hotel.test", Role: entity.OperatorRoleAdmin}, operator)
}

func TestRun_RejectsBadInput(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing id", args: []string{"-email", "ops@hotel.test"}},
		{name: "missing email", args: []string{"-id", "op-7"}},
		{name: "unknown role", args: []string{"-id", "op-7", "-email", "ops@hotel.test", "-role", "guest"}},
		{name: "non positive ttl", args: []string{"-id", "op-7", "-email", "ops@hotel.test", "-ttl", "0s"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(tt.args, &out))
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_MissingSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "")

	var out bytes.Buffer
	assert.Error(t, run([]string{"-id", "op-7", "-email", "ops@hotel.test"}, &out))
}

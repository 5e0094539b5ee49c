package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"innkeep/config"
	"innkeep/infras/jwt"
	"innkeep/shared/constant"
	"innkeep/shared/timezone"
)

func newSigner(accessMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "innkeep"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestJWT_Issue(t *testing.T) {
	tests := []struct {
		name    string
		staff   jwt.Staff
		wantErr error
	}{
		{name: "receptionist", staff: jwt.Staff{ID: "st-1", Email: "desk@inn.test", Role: constant.RoleReceptionist}},
		{name: "accountant without email", staff: jwt.Staff{ID: "st-2", Role: constant.RoleAccountant}},
		{name: "unknown role", staff: jwt.Staff{ID: "st-3", Role: "guest"}, wantErr: jwt.ErrUnknownRole},
		{name: "missing id", staff: jwt.Staff{Role: constant.RoleAdmin}, wantErr: jwt.ErrInvalidClaim},
	}

	signer := newSigner(15)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := signer.Issue(tt.staff)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, pair)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Bearer", pair.TokenType)
			assert.Equal(t, int64(900), pair.ExpiresIn)

			claims, err := signer.Verify(pair.AccessToken, jwt.AccessToken)
			assert.NoError(t, err)
			assert.Equal(t, tt.staff, claims.Staff())
			assert.NotEmpty(t, claims.ID)
		})
	}
}

func TestJWT_Verify(t *testing.T) {
	signer := newSigner(15)

	pair, err := signer.Issue(jwt.Staff{ID: "st-1", Role: constant.RoleManager})
	assert.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		kind    jwt.Kind
		wantErr error
	}{
		{name: "access as access", token: pair.AccessToken, kind: jwt.AccessToken},
		{name: "refresh as refresh", token: pair.RefreshToken, kind: jwt.RefreshToken},
		{name: "refresh used as access", token: pair.RefreshToken, kind: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not.a.token", kind: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Verify(tt.token, tt.kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestJWT_VerifyExpired(t *testing.T) {
	signer := newSigner(1)

	restore := timezone.Freeze(time.Now().Add(-2 * time.Hour))
	pair, err := signer.Issue(jwt.Staff{ID: "st-1", Role: constant.RoleAdmin})
	restore()

	assert.NoError(t, err)

	_, err = signer.Verify(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestJWT_Refresh(t *testing.T) {
	signer := newSigner(15)

	pair, err := signer.Issue(jwt.Staff{ID: "st-1", Email: "desk@inn.test", Role: constant.RoleReceptionist})
	assert.NoError(t, err)

	rotated, err := signer.Refresh(pair.RefreshToken)
	assert.NoError(t, err)

	claims, err := signer.Verify(rotated.AccessToken, jwt.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "st-1", claims.StaffID)

	_, err = signer.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def", want: "abc.def"},
		{name: "empty", header: "", wantErr: true},
		{name: "basic scheme", header: "Basic abc", wantErr: true},
		{name: "prefix only", header: "Bearer ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.BearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrMissingBearer)

				return
			}

			assert.Equal(t, tt.want, token)
		})
	}
}

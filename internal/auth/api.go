package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"time"

	"git.papertrade.io/trading-backend/trading-api/db"
	"git.papertrade.io/trading-backend/trading-api/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const secretMaterialLen = 32

var (
	// ErrMalformedToken token cannot be parsed or misses the public key id claim
	ErrMalformedToken = errors.New("auth: malformed token")

	// ErrBadSignature token signature doesn't match the secret of the referenced key
	ErrBadSignature = errors.New("auth: invalid signature")
)

// tokenClaims carried by bearer tokens, public key id travels as "pub"
type tokenClaims struct {
	PublicID string `json:"pub"`
	jwt.RegisteredClaims
}

// Api implements per-login public/secret key pair protocol: a login issues a fresh pair and a
// token signed with the secret, verification resolves the key by the public id claim and then the
// user referencing the key.
type Api struct {
	database *db.Db
	tokenTTL time.Duration
	logger   logrus.FieldLogger
}

// NewApi create new api instance
func NewApi(d *db.Db, tokenTTL time.Duration, logger logrus.FieldLogger) *Api {
	return &Api{database: d, tokenTTL: tokenTTL, logger: logger.WithField("module", "auth.api")}
}

// IssueKey generates fresh key pair for given user, persists it, repoints the user onto it and
// returns the public id along with a signed bearer token. The previous key row is deleted in the
// same transaction, so only the latest login session stays valid.
func (api *Api) IssueKey(ctx context.Context, user models.User) (publicID, token string, err error) {
	publicID = uuid.NewString()
	secret, err := generateSecret()
	if err != nil {
		return
	}

	err = api.database.TxCtx(ctx, func(ctx context.Context, tx db.ITx) error {
		key, err := models.CreateKey(tx, models.Key{PublicID: publicID, Secret: secret})
		if err != nil {
			return err
		}
		if err := models.SetUserKey(tx, user.ID, key.ID); err != nil {
			return err
		}
		if user.KeyID != nil {
			return models.DeleteKey(tx, *user.KeyID)
		}
		return nil
	})
	if err != nil {
		return
	}

	claims := tokenClaims{
		PublicID: publicID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(api.tokenTTL)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		err = errors.Wrap(err, "auth: token signing failed")
		return
	}

	api.logger.WithField("user_id", user.ID).Info("auth key issued")
	return
}

// Verify checks bearer token and resolves its owner. The public id claim is read without
// trusting the signature first, then the signature is verified against the stored secret of the
// matching key. Fails with ErrMalformedToken, models.ErrNoSuchKey, ErrBadSignature or
// models.ErrNoSuchUser, each surfaced distinctly.
func (api *Api) Verify(ctx context.Context, rawToken string) (user models.User, err error) {
	claims := tokenClaims{}
	if _, _, pErr := jwt.NewParser().ParseUnverified(rawToken, &claims); pErr != nil {
		err = ErrMalformedToken
		return
	}
	if claims.PublicID == "" {
		err = ErrMalformedToken
		return
	}

	key, err := models.GetKeyByPublicID(api.database, claims.PublicID)
	if err != nil {
		return
	}

	_, err = jwt.ParseWithClaims(
		rawToken, &tokenClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrBadSignature
			}
			return []byte(key.Secret), nil
		},
	)
	if err != nil {
		err = ErrBadSignature
		return
	}

	return models.GetUserByKeyID(api.database, key.ID)
}

// generateSecret hashes fresh random material, the hash itself is the HMAC signing secret
func generateSecret() (string, error) {
	material := make([]byte, secretMaterialLen)
	if _, err := rand.Read(material); err != nil {
		return "", errors.Wrap(err, "auth: secret generation failed")
	}
	sum := sha512.Sum512(material)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

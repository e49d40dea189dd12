package users

import (
	"context"
	"strings"

	"git.papertrade.io/trading-backend/trading-api/db"
	"git.papertrade.io/trading-backend/trading-api/models"
	"github.com/ericlagergren/decimal"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Api provides user registration and credential checks
type Api struct {
	database *db.Db
	logger   logrus.FieldLogger
}

// NewApi create new api instance
func NewApi(d *db.Db, logger logrus.FieldLogger) *Api {
	return &Api{database: d, logger: logger.WithField("module", "users.api")}
}

// Register creates user row along with the full seed balance set: cash asset gets the initial
// amount, every enabled coin gets a zero row. All inserts share one transaction, so a user either
// appears with the complete set or not at all. Returns models.ErrEmailAlreadyTaken on duplicate
// email.
func (api *Api) Register(ctx context.Context, name, email, password string) (user models.User, err error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		err = errors.Wrap(err, "users: hashing password failed")
		return
	}

	err = api.database.TxCtx(ctx, func(ctx context.Context, tx db.ITx) error {
		user, err = models.CreateUser(tx, models.User{
			Name:         name,
			Email:        strings.ToLower(email),
			PasswordHash: string(passwordHash),
		})
		if err != nil {
			return err
		}

		_, err = models.CreateBalance(tx, models.Balance{
			Name:   models.CashAssetName,
			Amount: models.InitialCashAmount,
			UserID: user.ID,
		})
		if err != nil {
			return err
		}

		coins, err := models.GetCoins(tx)
		if err != nil {
			return err
		}
		for _, coin := range coins {
			_, err = models.CreateBalance(tx, models.Balance{
				Name:   coin.Name,
				Amount: new(decimal.Big),
				UserID: user.ID,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return
	}

	api.logger.WithField("user_id", user.ID).Info("user registered")
	return
}

// Authenticate resolves user by email and verifies password against stored bcrypt hash. Both an
// unknown email and a wrong password surface models.ErrNoSuchUser so callers cannot probe for
// registered emails.
func (api *Api) Authenticate(ctx context.Context, email, password string) (user models.User, err error) {
	user, err = models.GetUserByEmail(api.database, strings.ToLower(email))
	if err != nil {
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		err = models.ErrNoSuchUser
	}
	return
}

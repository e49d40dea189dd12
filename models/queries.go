package models

import (
	"database/sql"
	"strings"

	"git.papertrade.io/trading-backend/trading-api/db"
	"github.com/ericlagergren/decimal"
	pgdecimal "github.com/ericlagergren/decimal/sql/postgres"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const pgUniqueViolation = "23505"

var (
	// ErrEmailAlreadyTaken returned when user with such email already registered
	ErrEmailAlreadyTaken = errors.New("models: email already taken")

	// ErrNoSuchUser returned when no user found for specified criteria
	ErrNoSuchUser = errors.New("models: no such user found")

	// ErrNoSuchCoin returned when invalid coin name is specified
	ErrNoSuchCoin = errors.New("models: such coin name is unexpected")

	// ErrNoSuchKey returned when no auth key found by public id
	ErrNoSuchKey = errors.New("models: no such key found")

	// ErrNoSuchBalance returned when no balance row found for (user, asset) pair
	ErrNoSuchBalance = errors.New("models: no such balance found")
)

// CreateUser inserts user row returning assigned id, coerces email unique violation into
// ErrEmailAlreadyTaken
func CreateUser(tx db.ITx, user User) (newUser User, err error) {
	err = tx.QueryRow(
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		user.Name, user.Email, user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == pgUniqueViolation {
			err = ErrEmailAlreadyTaken
		}
		return
	}
	newUser = user
	return
}

// GetUserByEmail returns user by email, ErrNoSuchUser when absent
func GetUserByEmail(tx db.ITx, email string) (user User, err error) {
	err = scanUserRow(tx.QueryRow(
		baseSelectUsersRequest+` WHERE email = $1`, strings.ToLower(email),
	), &user)
	if err == sql.ErrNoRows {
		err = ErrNoSuchUser
	}
	return
}

// GetUserByKeyID resolves user referencing given auth key, ErrNoSuchUser when absent
func GetUserByKeyID(tx db.ITx, keyID int64) (user User, err error) {
	err = scanUserRow(tx.QueryRow(
		baseSelectUsersRequest+` WHERE key_id = $1`, keyID,
	), &user)
	if err == sql.ErrNoRows {
		err = ErrNoSuchUser
	}
	return
}

// SetUserKey repoints user onto freshly issued key
func SetUserKey(tx db.ITx, userID, keyID int64) error {
	res, err := tx.Exec(`UPDATE users SET key_id = $1 WHERE id = $2`, keyID, userID)
	if err != nil {
		return errors.Wrap(err, "models: set user key")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoSuchUser
	}
	return nil
}

// CreateKey inserts auth key row returning assigned id
func CreateKey(tx db.ITx, key Key) (newKey Key, err error) {
	err = tx.QueryRow(
		`INSERT INTO keys (public_id, secret) VALUES ($1, $2) RETURNING id`,
		key.PublicID, key.Secret,
	).Scan(&key.ID)
	if err != nil {
		err = errors.Wrap(err, "models: create key")
		return
	}
	newKey = key
	return
}

// GetKeyByPublicID returns key by its public id, ErrNoSuchKey when absent
func GetKeyByPublicID(tx db.ITx, publicID string) (key Key, err error) {
	err = tx.QueryRow(
		`SELECT id, public_id, secret FROM keys WHERE public_id = $1`, publicID,
	).Scan(&key.ID, &key.PublicID, &key.Secret)
	if err == sql.ErrNoRows {
		err = ErrNoSuchKey
	}
	return
}

// DeleteKey removes key row, missing row is not an error so re-login stays idempotent
func DeleteKey(tx db.ITx, keyID int64) error {
	_, err := tx.Exec(`DELETE FROM keys WHERE id = $1`, keyID)
	return errors.Wrap(err, "models: delete key")
}

// GetCoins returns all enabled coins ordered by id (seed order)
func GetCoins(tx db.ITx) (coins []Coin, err error) {
	rows, err := tx.Query(`SELECT id, name, enabled FROM coins WHERE enabled = true ORDER BY id`)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var coin Coin
		if err = rows.Scan(&coin.ID, &coin.Name, &coin.Enabled); err != nil {
			return
		}
		coins = append(coins, coin)
	}
	err = rows.Err()
	return
}

// GetCoin request enabled coin by name, returns ErrNoSuchCoin if coin doesn't exists. Coin name
// argument is case insensitive.
func GetCoin(tx db.ITx, coinName string) (coin Coin, err error) {
	err = tx.QueryRow(
		`SELECT id, name, enabled FROM coins WHERE name = $1 AND enabled = true`,
		strings.ToLower(coinName),
	).Scan(&coin.ID, &coin.Name, &coin.Enabled)
	if err == sql.ErrNoRows {
		err = ErrNoSuchCoin
	}
	return
}

// CreateCoin inserts coin row, used by seed command
func CreateCoin(tx db.ITx, name string, enabled bool) error {
	_, err := tx.Exec(`INSERT INTO coins (name, enabled) VALUES ($1, $2)`, name, enabled)
	return errors.Wrap(err, "models: create coin")
}

// CreateBalance inserts balance row relying onto (name, user_id) unique constraint
func CreateBalance(tx db.ITx, balance Balance) (newBalance Balance, err error) {
	err = tx.QueryRow(
		`INSERT INTO balances (name, amount, user_id) VALUES ($1, $2, $3) RETURNING id`,
		balance.Name, &pgdecimal.Decimal{V: balance.Amount}, balance.UserID,
	).Scan(&balance.ID)
	if err != nil {
		err = errors.Wrap(err, "models: create balance")
		return
	}
	newBalance = balance
	return
}

// GetBalances returns all balance rows of a user ordered by asset name
func GetBalances(tx db.ITx, userID int64) (balances []Balance, err error) {
	rows, err := tx.Query(
		`SELECT id, name, amount, user_id FROM balances WHERE user_id = $1 ORDER BY name`,
		userID,
	)
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var balance Balance
		if err = scanBalanceRow(rows, &balance); err != nil {
			return
		}
		balances = append(balances, balance)
	}
	err = rows.Err()
	return
}

// GetBalancesForUpdate locks and returns balance rows of given assets. Rows are locked in
// asset-name order so concurrent trades touching same pair cannot deadlock. Returns
// ErrNoSuchBalance unless every requested asset row was found.
func GetBalancesForUpdate(tx db.ITx, userID int64, assetNames ...string) (balances map[string]Balance, err error) {
	rows, err := tx.Query(
		`SELECT id, name, amount, user_id FROM balances
         WHERE user_id = $1 AND name = ANY($2)
         ORDER BY name
         FOR UPDATE`,
		userID, pq.Array(assetNames),
	)
	if err != nil {
		return
	}
	defer rows.Close()

	balances = make(map[string]Balance, len(assetNames))
	for rows.Next() {
		var balance Balance
		if err = scanBalanceRow(rows, &balance); err != nil {
			return
		}
		balances[balance.Name] = balance
	}
	if err = rows.Err(); err != nil {
		return
	}
	if len(balances) != len(assetNames) {
		err = ErrNoSuchBalance
	}
	return
}

// UpdateBalanceAmount overwrites amount of given balance row
func UpdateBalanceAmount(tx db.ITx, balanceID int64, amount *decimal.Big) error {
	res, err := tx.Exec(
		`UPDATE balances SET amount = $1 WHERE id = $2`,
		&pgdecimal.Decimal{V: amount}, balanceID,
	)
	if err != nil {
		return errors.Wrap(err, "models: update balance amount")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNoSuchBalance
	}
	return nil
}

// TruncateAll clears every collection, used by seed command before inserting coins
func TruncateAll(tx db.ITx) error {
	_, err := tx.Exec(`TRUNCATE TABLE balances, keys, coins, users RESTART IDENTITY CASCADE`)
	return errors.Wrap(err, "models: truncate")
}

const baseSelectUsersRequest = `SELECT id, name, email, password_hash, key_id, created_at FROM users`

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(row scannable, user *User) error {
	return row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.KeyID,
		&user.CreatedAt,
	)
}

func scanBalanceRow(row scannable, balance *Balance) error {
	amount := pgdecimal.Decimal{V: new(decimal.Big)}
	err := row.Scan(&balance.ID, &balance.Name, &amount, &balance.UserID)
	if err != nil {
		return err
	}
	balance.Amount = amount.V
	return nil
}

package models

import (
	"time"

	"github.com/ericlagergren/decimal"
)

// CashAssetName is the synthetic fiat asset every user is seeded with
const CashAssetName = "usd"

// InitialCashAmount seeded onto the cash balance at registration time
var InitialCashAmount = decimal.New(10000, 0)

// User registered account, Key points onto last issued auth key
type User struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`

	KeyID *int64 `db:"key_id"`

	CreatedAt time.Time `db:"created_at"`
}

// Coin tradeable asset seeded at initialization
type Coin struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Enabled bool   `db:"enabled"`
}

// Balance per-user per-asset holding, unique on (name, user_id). Name is either CashAssetName
// or an enabled coin name.
type Balance struct {
	ID     int64        `db:"id"`
	Name   string       `db:"name"`
	Amount *decimal.Big `db:"amount"`

	UserID int64 `db:"user_id"`
}

// Key per-login credential. Secret is a hash of random material and is used as HMAC signing
// secret of bearer tokens, PublicID travels inside the token as a claim.
type Key struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	Secret   string `db:"secret"`

	CreatedAt time.Time `db:"created_at"`
}

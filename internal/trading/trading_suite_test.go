package trading

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ericlagergren/decimal"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"git.papertrade.io/trading-backend/trading-api/db"
	"git.papertrade.io/trading-backend/trading-api/models"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert"
	"git.papertrade.io/trading-backend/trading-api/pkg/services/convert/mocks"
)

func TestTrading(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Trading Suite")
}

// decimalArg matches sql args numerically, so representation details of the decimal driver
// value don't leak into expectations
type decimalArg string

func (d decimalArg) Match(v driver.Value) bool {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return false
	}
	want, ok := new(decimal.Big).SetString(string(d))
	if !ok {
		return false
	}
	got, ok := new(decimal.Big).SetString(s)
	return ok && want.Cmp(got) == 0
}

func rate(val string) *convert.Rate {
	b, _ := new(decimal.Big).SetString(val)
	return (*convert.Rate)(b)
}

func explicit(val string) Quantity {
	q, err := ExplicitQuantity(val)
	Expect(err).NotTo(HaveOccurred())
	return q
}

var _ = Describe("trade executor", func() {
	const (
		userID  = int64(7)
		cashID  = int64(100)
		assetID = int64(101)
	)
	user := models.User{ID: userID, Name: "trader", Email: "trader@example.com"}

	var (
		sqlMock   sqlmock.Sqlmock
		database  *db.Db
		converter *mocks.ICryptoCurrency
		api       *Api
	)

	BeforeEach(func() {
		conn, m, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		sqlMock = m
		database = &db.Db{DB: conn}
		converter = &mocks.ICryptoCurrency{}
		api = NewApi(database, converter, time.Second, logrus.New())
	})

	AfterEach(func() {
		Expect(sqlMock.ExpectationsWereMet()).To(Succeed())
	})

	expectCoin := func(name string) {
		sqlMock.ExpectQuery("FROM coins").
			WithArgs(name).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "enabled"}).AddRow(1, name, true))
	}

	expectLockedBalances := func(coinName, coinAmount, cashAmount string) {
		sqlMock.ExpectQuery("FOR UPDATE").
			WillReturnRows(
				sqlmock.NewRows([]string{"id", "name", "amount", "user_id"}).
					AddRow(assetID, coinName, coinAmount, userID).
					AddRow(cashID, models.CashAssetName, cashAmount, userID),
			)
	}

	expectAmountUpdate := func(balanceID int64, amount string) {
		sqlMock.ExpectExec("UPDATE balances SET amount").
			WithArgs(decimalArg(amount), balanceID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	Context("when buying", func() {
		It("executes explicit-quantity buy debiting cash and crediting asset", func() {
			expectCoin("bitcoin")
			converter.On("GetRate", mock.Anything, "bitcoin", "usd").Return(rate("2"), nil)

			sqlMock.ExpectBegin()
			expectLockedBalances("bitcoin", "0", "10000")
			expectAmountUpdate(cashID, "9994")
			expectAmountUpdate(assetID, "3")
			sqlMock.ExpectCommit()

			deal, err := api.Buy(context.Background(), user, "bitcoin", explicit("3"))
			Expect(err).NotTo(HaveOccurred())
			Expect(deal.Price.Cmp(decimal.New(2, 0))).To(Equal(0))
			Expect(deal.Quantity.Cmp(decimal.New(3, 0))).To(Equal(0))
		})

		It("resolves all-in quantity as cash over price floored to 4 digits", func() {
			expectCoin("bitcoin")
			converter.On("GetRate", mock.Anything, "bitcoin", "usd").Return(rate("3"), nil)

			sqlMock.ExpectBegin()
			expectLockedBalances("bitcoin", "0", "10000")
			// 10000/3 floors to 3333.3333, amount is 9999.9999, dust 0.0001 stays on cash
			expectAmountUpdate(cashID, "0.0001")
			expectAmountUpdate(assetID, "3333.3333")
			sqlMock.ExpectCommit()

			deal, err := api.Buy(context.Background(), user, "bitcoin", UseAllBalance())
			Expect(err).NotTo(HaveOccurred())
			Expect(deal.Quantity.Cmp(decimalFromString("3333.3333"))).To(Equal(0))
		})

		It("rejects buy exceeding cash balance leaving no writes behind", func() {
			expectCoin("bitcoin")
			converter.On("GetRate", mock.Anything, "bitcoin", "usd").Return(rate("100"), nil)

			sqlMock.ExpectBegin()
			expectLockedBalances("bitcoin", "0", "50")
			sqlMock.ExpectRollback()

			_, err := api.Buy(context.Background(), user, "bitcoin", explicit("1"))
			Expect(err).To(MatchError(ErrInsufficientBalance))
		})

		It("fails with no-such-coin before quoting", func() {
			sqlMock.ExpectQuery("FROM coins").
				WithArgs("unobtanium").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "enabled"}))

			_, err := api.Buy(context.Background(), user, "unobtanium", explicit("1"))
			Expect(err).To(MatchError(models.ErrNoSuchCoin))
			converter.AssertNotCalled(GinkgoT(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
		})

		It("propagates rate source unavailability without touching balances", func() {
			expectCoin("bitcoin")
			converter.On("GetRate", mock.Anything, "bitcoin", "usd").Return(nil, convert.ErrUnavailable)

			_, err := api.Buy(context.Background(), user, "bitcoin", explicit("1"))
			Expect(err).To(MatchError(convert.ErrUnavailable))
		})
	})

	Context("when selling", func() {
		It("executes explicit-quantity sell crediting cash", func() {
			expectCoin("bitcoin")
			converter.On("GetRate", mock.Anything, "bitcoin", "usd").Return(rate("2"), nil)

			sqlMock.ExpectBegin()
			expectLockedBalances("bitcoin", "5", "100")
			expectAmountUpdate(assetID, "2")
			expectAmountUpdate(cashID, "106")
			sqlMock.ExpectCommit()

			deal, err := api.Sell(context.Background(), user, "bitcoin", explicit("3"))
			Expect(err).NotTo(HaveOccurred())
			Expect(deal.Quantity.Cmp(decimal.New(3, 0))).To(Equal(0))
		})

		It("resolves all-in quantity as the whole holding", func() {
			expectCoin("bitcoin")
			converter.On("GetRate", mock.Anything, "bitcoin", "usd").Return(rate("2"), nil)

			sqlMock.ExpectBegin()
			expectLockedBalances("bitcoin", "5", "100")
			expectAmountUpdate(assetID, "0")
			expectAmountUpdate(cashID, "110")
			sqlMock.ExpectCommit()

			deal, err := api.Sell(context.Background(), user, "bitcoin", UseAllBalance())
			Expect(err).NotTo(HaveOccurred())
			Expect(deal.Quantity.Cmp(decimal.New(5, 0))).To(Equal(0))
		})

		It("rejects sell exceeding held quantity leaving no writes behind", func() {
			expectCoin("bitcoin")
			converter.On("GetRate", mock.Anything, "bitcoin", "usd").Return(rate("2"), nil)

			sqlMock.ExpectBegin()
			expectLockedBalances("bitcoin", "1", "100")
			sqlMock.ExpectRollback()

			_, err := api.Sell(context.Background(), user, "bitcoin", explicit("3"))
			Expect(err).To(MatchError(ErrInsufficientBalance))
		})
	})

	Context("when querying balances", func() {
		It("omits zero rows", func() {
			sqlMock.ExpectQuery("FROM balances").
				WithArgs(userID).
				WillReturnRows(
					sqlmock.NewRows([]string{"id", "name", "amount", "user_id"}).
						AddRow(assetID, "bitcoin", "0", userID).
						AddRow(cashID, "usd", "10000", userID),
				)

			view, err := api.Balances(context.Background(), user)
			Expect(err).NotTo(HaveOccurred())
			Expect(view).To(HaveLen(1))
			Expect(view).To(HaveKey("usd"))
		})
	})
})

func decimalFromString(s string) *decimal.Big {
	b, ok := new(decimal.Big).SetString(s)
	Expect(ok).To(BeTrue())
	return b
}

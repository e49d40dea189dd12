package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"git.papertrade.io/trading-backend/trading-api/db"
	"git.papertrade.io/trading-backend/trading-api/internal/auth"
	"git.papertrade.io/trading-backend/trading-api/internal/users"
)

func TestUsersHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Users Handlers Suite")
}

type errorsBody struct {
	Errors struct {
		Message string `json:"message"`
		Fields  []struct {
			Input   string `json:"input"`
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"fields"`
	} `json:"errors"`
}

var _ = Describe("users endpoints", func() {
	var (
		sqlMock sqlmock.Sqlmock
		engine  *gin.Engine
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		conn, m, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		sqlMock = m
		database := &db.Db{DB: conn}

		logger := logrus.New()
		engine = gin.New()
		Expect(Register(Dependencies{
			Routes:   engine,
			UsersApi: users.NewApi(database, logger),
			AuthApi:  auth.NewApi(database, time.Hour, logger),
		})).To(Succeed())
	})

	AfterEach(func() {
		Expect(sqlMock.ExpectationsWereMet()).To(Succeed())
	})

	doPost := func(path string, body interface{}) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)
		return recorder
	}

	Context("POST /register", func() {
		registerBody := gin.H{
			"name":     "trader",
			"email":    "trader@example.com",
			"password": "long-password",
		}

		It("responds with assigned user id", func() {
			sqlMock.ExpectBegin()
			sqlMock.ExpectQuery("INSERT INTO users").
				WithArgs("trader", "trader@example.com", sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			sqlMock.ExpectQuery("INSERT INTO balances").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			sqlMock.ExpectQuery("FROM coins").
				WillReturnRows(
					sqlmock.NewRows([]string{"id", "name", "enabled"}).AddRow(1, "bitcoin", true),
				)
			sqlMock.ExpectQuery("INSERT INTO balances").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
			sqlMock.ExpectCommit()

			recorder := doPost("/register", registerBody)
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp RegisterResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.ID).To(Equal(int64(7)))
		})

		It("reports duplicated email as a field error", func() {
			sqlMock.ExpectBegin()
			sqlMock.ExpectQuery("INSERT INTO users").
				WillReturnError(&pq.Error{Code: "23505"})
			sqlMock.ExpectRollback()

			recorder := doPost("/register", registerBody)
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var body errorsBody
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Errors.Fields).To(HaveLen(1))
			Expect(body.Errors.Fields[0].Name).To(Equal("email"))
		})

		It("rejects too short password without touching storage", func() {
			recorder := doPost("/register", gin.H{
				"name":     "trader",
				"email":    "trader@example.com",
				"password": "short",
			})
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var body errorsBody
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Errors.Fields).To(HaveLen(1))
			Expect(body.Errors.Fields[0].Name).To(Equal("password"))
		})

		It("rejects malformed email", func() {
			recorder := doPost("/register", gin.H{
				"name":     "trader",
				"email":    "not-an-email",
				"password": "long-password",
			})
			Expect(recorder.Code).To(Equal(http.StatusBadRequest))

			var body errorsBody
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Errors.Fields).To(HaveLen(1))
			Expect(body.Errors.Fields[0].Name).To(Equal("email"))
		})
	})

	Context("POST /login", func() {
		const password = "long-password"

		It("responds with key public id and bearer token", func() {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())

			sqlMock.ExpectQuery("FROM users").
				WithArgs("trader@example.com").
				WillReturnRows(
					sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "key_id", "created_at"}).
						AddRow(7, "trader", "trader@example.com", string(hash), nil, time.Now()),
				)
			sqlMock.ExpectBegin()
			sqlMock.ExpectQuery("INSERT INTO keys").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
			sqlMock.ExpectExec("UPDATE users SET key_id").
				WithArgs(int64(42), int64(7)).
				WillReturnResult(sqlmock.NewResult(0, 1))
			sqlMock.ExpectCommit()

			recorder := doPost("/login", gin.H{"email": "trader@example.com", "password": password})
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp LoginResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.PublicID).NotTo(BeEmpty())
			Expect(resp.Token).NotTo(BeEmpty())
		})

		It("responds 404 when email is unknown", func() {
			sqlMock.ExpectQuery("FROM users").
				WithArgs("nobody@example.com").
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "key_id", "created_at"}))

			recorder := doPost("/login", gin.H{"email": "nobody@example.com", "password": password})
			Expect(recorder.Code).To(Equal(http.StatusNotFound))

			var body errorsBody
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Errors.Message).To(Equal("user not exists"))
		})

		It("responds 404 when password mismatches", func() {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())

			sqlMock.ExpectQuery("FROM users").
				WithArgs("trader@example.com").
				WillReturnRows(
					sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "key_id", "created_at"}).
						AddRow(7, "trader", "trader@example.com", string(hash), nil, time.Now()),
				)

			recorder := doPost("/login", gin.H{"email": "trader@example.com", "password": "wrong-password"})
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})

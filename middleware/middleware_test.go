package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_mid "github.com/semka95/repositories/backend/middleware"
)

func TestCORS(t *testing.T) {
	m := _mid.InitMiddleware(nil)

	t.Run("simple request", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(echo.GET, "/", nil)
		res := httptest.NewRecorder()
		c := e.NewContext(req, res)

		h := m.CORS(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		err := h(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "*", res.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("preflight", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(echo.OPTIONS, "/repositories", nil)
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPut)
		req.Header.Set(echo.HeaderAccessControlRequestHeaders, echo.HeaderContentType)
		res := httptest.NewRecorder()
		c := e.NewContext(req, res)

		called := false
		h := m.CORS(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		err := h(c)
		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, http.StatusNoContent, res.Code)
		assert.Equal(t, "*", res.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, res.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPut)
		assert.Equal(t, echo.HeaderContentType, res.Header().Get(echo.HeaderAccessControlAllowHeaders))
	})
}

type loggerJSON struct {
	Level   string `json:"L"`
	Message string `json:"M"`
	Status  int    `json:"status"`
	Method  string `json:"method"`
	URI     string `json:"uri"`
}

func TestLogger(t *testing.T) {
	var b []byte
	l := bytes.NewBuffer(b)
	writerSyncer := zapcore.AddSync(l)
	encoder := zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, writerSyncer, zapcore.DebugLevel)
	logger := zap.New(core)
	defer func() {
		err := logger.Sync()
		if err != nil {
			t.Log("Can't close logger")
		}
	}()

	m := _mid.InitMiddleware(logger)

	cases := []struct {
		Description string
		MidFunc     echo.HandlerFunc
		Want        loggerJSON
	}{
		{
			"test success",
			echo.HandlerFunc(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}),
			loggerJSON{Level: "INFO", Message: "Success", Status: 200, Method: "GET", URI: "/repositories"},
		},
		{
			"test server error",
			echo.HandlerFunc(func(c echo.Context) error {
				return errors.New("test error")
			}),
			loggerJSON{Level: "ERROR", Message: "Server error", Status: 500, Method: "GET", URI: "/repositories"},
		},
		{
			"test client error",
			echo.HandlerFunc(func(c echo.Context) error {
				return c.NoContent(http.StatusBadRequest)
			}),
			loggerJSON{Level: "WARN", Message: "Client error", Status: 400, Method: "GET", URI: "/repositories"},
		},
		{
			"test redirection",
			echo.HandlerFunc(func(c echo.Context) error {
				return c.NoContent(http.StatusMovedPermanently)
			}),
			loggerJSON{Level: "INFO", Message: "Redirection", Status: 301, Method: "GET", URI: "/repositories"},
		},
	}

	for _, test := range cases {
		t.Run(test.Description, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(echo.GET, "/repositories", nil)
			res := httptest.NewRecorder()
			c := e.NewContext(req, res)

			h := m.Logger(test.MidFunc)
			err := h(c)
			require.NoError(t, err)

			answer := new(loggerJSON)
			err = json.Unmarshal(l.Bytes(), answer)
			require.NoError(t, err)

			assert.EqualValues(t, test.Want, *answer)

			l.Reset()
		})
	}
}

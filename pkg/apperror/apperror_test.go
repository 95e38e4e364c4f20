package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitsocial/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(fmt.Errorf("post: %w", ErrNotFound)))
	assert.Equal(t, http.StatusForbidden, Status(ErrForbidden))
	assert.Equal(t, http.StatusBadRequest, Status(fmt.Errorf("%w: text is required", ErrInvalidInput)))
	assert.Equal(t, http.StatusConflict, Status(ErrConflict))
	assert.Equal(t, http.StatusUnauthorized, Status(ErrUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestNotFoundOr(t *testing.T) {
	assert.ErrorIs(t, NotFoundOr(gorm.ErrRecordNotFound), ErrNotFound)

	badUUID := fmt.Errorf("query: %w", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})
	assert.ErrorIs(t, NotFoundOr(badUUID), ErrNotFound)
	assert.Equal(t, http.StatusNotFound, Status(NotFoundOr(badUUID)))

	unique := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, error(unique), NotFoundOr(unique))

	other := errors.New("connection reset")
	assert.Equal(t, other, NotFoundOr(other))
	assert.Nil(t, NotFoundOr(nil))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.New()

	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"classified", fmt.Errorf("%w: text is required", ErrInvalidInput), http.StatusBadRequest, "invalid input: text is required"},
		{"internal", errors.New("pq: relation does not exist"), http.StatusInternalServerError, "Failed to load"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Respond(c, log, tc.err, "Failed to load")

			assert.Equal(t, tc.wantCode, w.Code)
			var body map[string]string
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMsg, body["error"])
		})
	}
}

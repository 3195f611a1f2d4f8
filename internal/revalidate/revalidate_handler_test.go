package revalidate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hiringlens/internal/revalidate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePageInvalidator struct {
	keys []string
	err  error
}

func (f *fakePageInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	f.keys = append(f.keys, keys...)
	return f.err
}

func doRevalidate(h *revalidate.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/revalidate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Revalidate(c)
	return w
}

func TestRevalidateHandler(t *testing.T) {
	t.Run("success purges company page and home", func(t *testing.T) {
		pages := &fakePageInvalidator{}
		h := revalidate.NewHandler("s3cret", pages)

		w := doRevalidate(h, `{"secret":"s3cret","slug":"acme-corp"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"revalidated":true`)
		assert.Equal(t, []string{"page:company:acme-corp", "page:home"}, pages.keys)
	})

	t.Run("success without slug purges home only", func(t *testing.T) {
		pages := &fakePageInvalidator{}
		h := revalidate.NewHandler("s3cret", pages)

		w := doRevalidate(h, `{"secret":"s3cret"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"revalidated":true`)
		assert.Equal(t, []string{"page:home"}, pages.keys)
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		pages := &fakePageInvalidator{}
		h := revalidate.NewHandler("s3cret", pages)

		w := doRevalidate(h, `{"secret":"guess","slug":"acme-corp"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, pages.keys)
	})

	t.Run("negative unconfigured secret rejects everything", func(t *testing.T) {
		h := revalidate.NewHandler("", &fakePageInvalidator{})

		w := doRevalidate(h, `{"secret":"","slug":"acme-corp"}`)

		// Empty configured secret must not mean open access.
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doRevalidate(h, `{"secret":"anything","slug":"acme-corp"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative malformed slug", func(t *testing.T) {
		pages := &fakePageInvalidator{}
		h := revalidate.NewHandler("s3cret", pages)

		w := doRevalidate(h, `{"secret":"s3cret","slug":"Acme Corp!"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, pages.keys)
	})

	t.Run("negative purge failure returns 500", func(t *testing.T) {
		pages := &fakePageInvalidator{err: assert.AnError}
		h := revalidate.NewHandler("s3cret", pages)

		w := doRevalidate(h, `{"secret":"s3cret","slug":"acme-corp"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

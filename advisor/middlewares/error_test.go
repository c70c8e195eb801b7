/*
 *     Copyright 2026 The Cropwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cropwise/cropwise/internal/cwerrors"
)

func mockErrorRouter(err error, bind bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Error())
	r.GET("/", func(c *gin.Context) {
		if err == nil {
			c.Status(http.StatusOK)
			return
		}

		if bind {
			c.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
			return
		}

		c.Error(err) // nolint: errcheck
	})

	return r
}

func TestMiddlewares_Error(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		bind   bool
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "no error",
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Empty(w.Body.String())
			},
		},
		{
			name: "invalid input",
			err:  cwerrors.New(cwerrors.ErrInvalidInput, "ph: unable to cast"),
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal("invalid input: ph: unable to cast", resp.Error)
			},
		},
		{
			name: "bind error",
			err:  errors.New("EOF"),
			bind: true,
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
			},
		},
		{
			name: "model unavailable",
			err:  cwerrors.New(cwerrors.ErrModelUnavailable, "no fitted model set is loaded"),
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusServiceUnavailable, w.Code)
			},
		},
		{
			name: "crop not found",
			err:  cwerrors.New(cwerrors.ErrCropNotFound, "quinoa"),
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusNotFound, w.Code)
			},
		},
		{
			name: "unexpected error hides detail",
			err:  errors.New("index out of range"),
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
				assert.NotContains(w.Body.String(), "index out of range")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			mockErrorRouter(tc.err, tc.bind).ServeHTTP(w, req)
			tc.expect(t, w)
		})
	}
}

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
	"net/http"

	"github.com/gin-gonic/gin"

	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/internal/cwerrors"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		// Bind errors.
		if err.IsType(gin.ErrorTypeBind) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: http.StatusText(http.StatusBadRequest),
				Error:   err.Error(),
			})
			return
		}

		var status int
		switch {
		case cwerrors.IsInvalidInput(err.Err):
			status = http.StatusBadRequest
		case cwerrors.IsModelUnavailable(err.Err):
			status = http.StatusServiceUnavailable
		case cwerrors.IsCropNotFound(err.Err):
			status = http.StatusNotFound
		default:
			logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err.Err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Message: http.StatusText(http.StatusInternalServerError),
				Error:   "internal server error",
			})
			return
		}

		c.JSON(status, ErrorResponse{
			Message: http.StatusText(status),
			Error:   err.Error(),
		})
	}
}

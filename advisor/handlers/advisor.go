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

package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/cropwise/cropwise/advisor/service"
)

// @Summary Get Model Info
// @Description Metadata of the loaded model set
// @Tags Model
// @Produce json
// @Success 200 {object} service.ModelInfo
// @Router /model/info [get]
func (h *Handlers) GetModelInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.service.ModelInfo(ctx.Request.Context()))
}

// @Summary Predict
// @Description Recommend crops for soil and climate features, missing features take defaults
// @Tags Predict
// @Accept json
// @Produce json
// @Param Features body object true "Features"
// @Success 200 {object} service.Prediction
// @Failure 400
// @Failure 500
// @Failure 503
// @Router /predict [post]
func (h *Handlers) CreatePrediction(ctx *gin.Context) {
	var json map[string]any
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	prediction, err := h.service.Predict(ctx.Request.Context(), json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, prediction)
}

// @Summary Get Crop Database
// @Description Optimal conditions and economics of every known crop
// @Tags Crop
// @Produce json
// @Success 200 {object} service.CropDatabase
// @Router /crops/database [get]
func (h *Handlers) GetCropDatabase(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.service.CropDatabase(ctx.Request.Context()))
}

// @Summary Get Crop
// @Description Optimal conditions and economics of one crop
// @Tags Crop
// @Produce json
// @Param crop path string true "crop"
// @Success 200 {object} service.CropEntry
// @Failure 404
// @Router /crops/database/{crop} [get]
func (h *Handlers) GetCrop(ctx *gin.Context) {
	var params service.CropParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	crop, err := h.service.Crop(ctx.Request.Context(), params.Crop)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, crop)
}

// @Summary Retrain
// @Description Regenerate the dataset and retrain the model set, the body is optional
// @Tags Model
// @Accept json
// @Produce json
// @Param Retrain body service.RetrainRequest false "Retrain"
// @Success 200 {object} service.RetrainResult
// @Failure 400
// @Failure 500
// @Router /retrain [post]
func (h *Handlers) CreateRetrain(ctx *gin.Context) {
	var json service.RetrainRequest
	if err := ctx.ShouldBindJSON(&json); err != nil && !errors.Is(err, io.EOF) {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	// Training runs to completion even if the client goes away.
	spanCtx := trace.SpanContextFromContext(ctx.Request.Context())
	result, err := h.service.Retrain(trace.ContextWithSpanContext(context.Background(), spanCtx), json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, result)
}

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

package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cropwise/cropwise/advisor/config"
	"github.com/cropwise/cropwise/advisor/handlers"
	"github.com/cropwise/cropwise/advisor/middlewares"
	"github.com/cropwise/cropwise/advisor/service"
	logger "github.com/cropwise/cropwise/internal/cwlog"
)

const (
	PrometheusSubsystemName = "cropwise_advisor"
	OtelServiceName         = "cropwise-advisor"
)

func Init(cfg *config.Config, service service.Service) *gin.Engine {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	h := handlers.New(service)

	// Prometheus metrics.
	if cfg.Metrics.Enable {
		p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
		// URL removes query string.
		p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
			return c.Request.URL.Path
		}
		p.Use(r)
	}

	// Opentelemetry
	if cfg.Telemetry.Jaeger != "" {
		r.Use(otelgin.Middleware(OtelServiceName))
	}

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true

	// Middleware
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))

	// Health Check
	r.GET("/healthy", h.GetHealthy)
	r.GET("/health", h.GetHealth)

	// Model
	r.GET("/model/info", h.GetModelInfo)
	r.POST("/retrain", h.CreateRetrain)

	// Predict
	r.POST("/predict", h.CreatePrediction)

	// Crop
	r.GET("/crops/database", h.GetCropDatabase)
	r.GET("/crops/database/:crop", h.GetCrop)

	return r
}

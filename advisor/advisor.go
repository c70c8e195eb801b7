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

package advisor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cropwise/cropwise/advisor/config"
	"github.com/cropwise/cropwise/advisor/knowledge"
	"github.com/cropwise/cropwise/advisor/metrics"
	"github.com/cropwise/cropwise/advisor/model"
	"github.com/cropwise/cropwise/advisor/router"
	"github.com/cropwise/cropwise/advisor/service"
	"github.com/cropwise/cropwise/advisor/storage"
	logger "github.com/cropwise/cropwise/internal/cwlog"
	"github.com/cropwise/cropwise/internal/cwerrors"
	"github.com/cropwise/cropwise/pkg/cwpath"
)

const (
	// gracefulStopTimeout is the time to wait for in-flight requests on stop.
	gracefulStopTimeout = 10 * time.Second
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Boundary service.
	service service.Service

	// REST server.
	restServer *http.Server

	// Metrics server.
	metricsServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, d cwpath.Cwpath) (*Server, error) {
	s := &Server{config: cfg}

	svc, _, err := newService(cfg, d)
	if err != nil {
		return nil, err
	}
	s.service = svc

	// A missing or unreadable model set is replaced by a fresh one.
	if !svc.Health(ctx).ModelLoaded {
		logger.Info("no persisted model set, training a new one")
		result, err := svc.Retrain(ctx, service.RetrainRequest{})
		if err != nil {
			return nil, err
		}
		logger.WithModel(result.ModelID).Infof("initial model set trained, accuracy %.4f", result.NewAccuracy)
	}

	// Initialize REST server.
	s.restServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.ListenIP.String(), strconv.Itoa(cfg.Server.Port)),
		Handler: router.Init(cfg, svc),
	}

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

// Train runs one offline training and persists the resulting model set.
// With fromDataset the previously exported dataset is trained on instead
// of a generated one.
func Train(ctx context.Context, cfg *config.Config, d cwpath.Cwpath, fromDataset bool) (*service.RetrainResult, error) {
	svc, s, err := newService(cfg, d)
	if err != nil {
		return nil, err
	}

	var req service.RetrainRequest
	if fromDataset {
		samples, err := s.LoadDataset()
		if err != nil {
			return nil, err
		}

		logger.Infof("training on %d exported samples", len(samples))
		req.Samples = samples
	}

	result, err := svc.Retrain(ctx, req)
	if err != nil {
		return nil, err
	}

	if !result.Persisted {
		return result, cwerrors.New(cwerrors.ErrPersistence, "model set trained but not persisted")
	}

	return result, nil
}

// newService builds the boundary service and loads the persisted model set
// when one is present. Unreadable artifacts are cleared.
func newService(cfg *config.Config, d cwpath.Cwpath) (service.Service, storage.Storage, error) {
	kb := knowledge.Default()

	// Initialize storage.
	s, err := storage.New(d.ModelDir())
	if err != nil {
		return nil, nil, err
	}

	handle := model.NewHandle()
	if s.Exists() {
		set, err := s.Load()
		if err == nil {
			err = handle.Store(set)
		}

		if err != nil {
			logger.Warnf("load persisted model set failed: %v", err)
			if cerr := s.Clear(); cerr != nil {
				logger.Errorf("clear model directory failed: %v", cerr)
			}
		} else {
			metrics.ModelAccuracyGauge.Set(set.Accuracy)
			logger.WithModel(set.ID).Infof("loaded persisted model set, accuracy %.4f", set.Accuracy)
		}
	}

	return service.New(cfg, kb, handle, s), s, nil
}

func (s *Server) Serve() error {
	// Started metrics server.
	if s.metricsServer != nil {
		go func() {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil {
				if err == http.ErrServerClosed {
					return
				}

				logger.Fatalf("metrics server closed unexpect: %s", err.Error())
			}
		}()
	}

	// Started REST server.
	logger.Infof("started rest server at %s", s.restServer.Addr)
	if err := s.restServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("rest server closed unexpect: %s", err.Error())
		return err
	}

	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), gracefulStopTimeout)
	defer cancel()

	// Stop REST server.
	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %s", err.Error())
	}
	logger.Info("rest server closed under request")

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		}
		logger.Info("metrics server closed under request")
	}
}

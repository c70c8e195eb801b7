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

package cwpath

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// ModelDirName is the directory under data dir holding trained artifacts.
const ModelDirName = "models"

// Cwpath is the interface used for init project path.
type Cwpath interface {
	WorkHome() string
	LogDir() string
	DataDir() string
	DataDirMode() fs.FileMode
	ModelDir() string
}

type cwpath struct {
	workHome    string
	logDir      string
	dataDir     string
	dataDirMode fs.FileMode
}

// Option is a functional option for configuring the cwpath.
type Option func(d *cwpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *cwpath) {
		d.workHome = dir
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *cwpath) {
		d.logDir = dir
	}
}

// WithDataDir set the data directory.
func WithDataDir(dir string) Option {
	return func(d *cwpath) {
		d.dataDir = dir
	}
}

// WithDataDirMode sets the dataDir mode.
func WithDataDirMode(mode fs.FileMode) Option {
	return func(d *cwpath) {
		d.dataDirMode = mode
	}
}

// New creates the directories and returns a Cwpath.
func New(options ...Option) (Cwpath, error) {
	d := &cwpath{
		workHome:    DefaultWorkHome,
		logDir:      DefaultLogDir,
		dataDir:     DefaultDataDir,
		dataDirMode: DefaultDataDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	var errs *multierror.Error
	if err := os.MkdirAll(d.workHome, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := os.MkdirAll(d.logDir, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := os.MkdirAll(d.ModelDir(), d.dataDirMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *cwpath) WorkHome() string {
	return d.workHome
}

func (d *cwpath) LogDir() string {
	return d.logDir
}

func (d *cwpath) DataDir() string {
	return d.dataDir
}

func (d *cwpath) DataDirMode() fs.FileMode {
	return d.dataDirMode
}

func (d *cwpath) ModelDir() string {
	return filepath.Join(d.dataDir, ModelDirName)
}

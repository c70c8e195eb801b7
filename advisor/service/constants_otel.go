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

package service

import "go.opentelemetry.io/otel/attribute"

const (
	AttributeModelID     = attribute.Key("cropwise.model.id")
	AttributeTopCrop     = attribute.Key("cropwise.top.crop")
	AttributeSampleCount = attribute.Key("cropwise.sample.count")
	AttributeSeed        = attribute.Key("cropwise.seed")
	AttributeAccuracy    = attribute.Key("cropwise.accuracy")
	AttributePersisted   = attribute.Key("cropwise.persisted")
)

const (
	SpanPredict = "predict"
	SpanRetrain = "retrain"
)

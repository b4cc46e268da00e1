// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package recorder

// NoopRecorder is used when history is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (*NoopRecorder) RecordTransaction(*TxRecord) error { return nil }
func (*NoopRecorder) UpdateStatus(string, TxStatus) error { return nil }
func (*NoopRecorder) ListTransactions(string, int) ([]TxRecord, error) { return nil, nil }
func (*NoopRecorder) Close() error { return nil }

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the offline client runtime.
//
// It ties the local HTTP API and the background synchronization worker into
// a single process lifecycle.
package client

// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by tests: home directory isolation
// and a process-wide limit on concurrent container operations.
package testutil

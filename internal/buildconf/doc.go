// SPDX-License-Identifier: MPL-2.0

// Package buildconf ties a signal reader to the lifetime of a build
// configuration.
//
// A Configuration reads its signals once, classifies them once and keeps the
// resulting platform.Profile until it is closed. A Session holds the named
// configurations of one process, for instance a native target and several
// cross targets, and classifies them concurrently.
package buildconf

// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown help pages
// for the failures a user can fix: unresolved classifications, broken toolchains,
// invalid target descriptors and configuration files.
package issue

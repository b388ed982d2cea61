// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that fail the test on error instead of
// returning it.
//
// Environment and working directory helpers (MustSetenv, MustUnsetenv,
// MustChdir, SetHomeDir) return a restore function. Tree helpers
// (WriteTree, ReadTree, NewSite) build and inspect directory fixtures.
package testutil

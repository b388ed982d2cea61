// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into user-facing messages.
//
// ActionableError carries the failed operation, the path involved and
// remediation hints. Issue is a catalog entry of Markdown guidance rendered
// with glamour for the most common failure classes of pack and unpack.
package issue

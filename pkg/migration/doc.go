// SPDX-License-Identifier: MPL-2.0

// Package migration works with unpacked All-in-One WP Migration packages.
//
// A package is a directory holding the site files together with three
// well-known files at its root: package.json (site metadata such as active
// plugins and theme), database.sql (the database dump) and migration.log.
// Package reads that metadata, validates the layout and converts the
// directory to and from a .wpress archive using package wpress.
package migration

// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for ai1wm.
//
// The root command keeps the two-argument form of the original tool
// (ai1wm <source> <target>): a file source is unpacked into the target
// directory, a directory source is packed into the target file. The pack,
// unpack, list, info and config subcommands expose each step on its own.
package cmd

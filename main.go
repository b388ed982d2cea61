// SPDX-License-Identifier: MPL-2.0

// Command ai1wm packs and unpacks All-in-One WP Migration archives.
package main

import cmd "ai1wm-cli/cmd/ai1wm"

func main() {
	cmd.Execute()
}

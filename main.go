// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/targetprobe/targetprobe/cmd/targetprobe"

func main() {
	cmd.Execute()
}

// SPDX-License-Identifier: MIT

package main

import "github.com/katalvlaran/ldblocks/cmd/commands"

func main() {
	commands.Execute()
}

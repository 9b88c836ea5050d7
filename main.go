// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/routec/routec/cmd/routec"

func main() {
	cmd.Execute()
}

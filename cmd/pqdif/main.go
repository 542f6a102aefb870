/*
Copyright © 2026 the pqdif authors
*/
package main

import "github.com/pqdif/pqdif/cmd/pqdif/cmd"

func main() {
	cmd.Execute()
}

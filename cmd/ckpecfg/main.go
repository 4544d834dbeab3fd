package main

import "ckpecfg/cmd/ckpecfg/cmd"

func main() {
	cmd.Execute()
}

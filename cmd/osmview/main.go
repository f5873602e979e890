package main

import (
	"github.com/omniscale/osmview/cmd"
)

func main() {
	cmd.Main()
}

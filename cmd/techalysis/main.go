package main

import (
	"github.com/techalysis/techalysis/pkg/cmd"
)

func main() {
	cmd.Execute()
}

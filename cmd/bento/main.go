package main

import (
	"github.com/mirukoto/bento/cmd/bento/cmd"
)

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/tidyops/workmaid/cmd"
)

func main() {
	cmd.Execute()
}

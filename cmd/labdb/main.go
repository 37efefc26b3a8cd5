package main

import "github.com/materials-commons/labdb/cmd/labdb/cmd"

func main() {
	cmd.Execute()
}

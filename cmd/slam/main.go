package main

import "os"

const version = "v1.0"

func main() {
	os.Exit(Execute(version))
}

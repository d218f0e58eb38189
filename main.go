package main

import (
	"github.com/hxzhou/blog-platform/cmd"
)

func main() {
	cmd.Execute()
}

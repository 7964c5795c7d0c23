package main

import "github.com/sk-226/ssdownload/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/theirongolddev/ctrail/cmd"

func main() {
	cmd.Execute()
}

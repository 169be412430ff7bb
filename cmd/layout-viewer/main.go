package main

import "github.com/atopile/atopile-sub007/cmd/layout-viewer/cmd"

func main() {
	cmd.Execute()
}

package main

import "rollcall/cmd"

// Build metadata, set during build with -ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}

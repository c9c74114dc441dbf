// Command cinemind runs the CineMind studio API.
//
//	@title			CineMind Studio API
//	@version		1.0
//	@description	Film pre-production backend: script breakdowns, dashboard, dailies search, preview renders and creative intent.
//	@BasePath		/api
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

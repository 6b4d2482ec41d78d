//go:build !statsview

package main

import "log"

func launchStats() {
	log.Print("statsview not compiled in; build with -tags statsview")
}

//go:build statsview

package main

import (
	"log"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const statsAddr = "localhost:12600"

func launchStats() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsAddr))
		statsview.New().Start()
	}()
	log.Printf("stats server available at %s/debug/statsview", statsAddr)
}

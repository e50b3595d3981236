//go:build !no_pprof
// +build !no_pprof

package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"fortio.org/log"
)

var (
	cpuprofile = flag.String("profile-cpu", "", "write cpu profile of building and scanning to `file`")
	memprofile = flag.String("profile-mem", "", "write memory profile to `file` at exit")
)

func init() {
	hookBefore = startCPUProfile
	hookAfter = stopProfiles
}

func startCPUProfile() int {
	if *cpuprofile == "" {
		return 0
	}
	f, err := os.Create(*cpuprofile)
	if err != nil {
		return log.FErrf("can't open file for cpu profile: %v", err)
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		return log.FErrf("can't start cpu profile: %v", err)
	}
	log.Infof("Writing cpu profile to %s", *cpuprofile)
	return 0
}

func stopProfiles() int {
	if *cpuprofile != "" {
		pprof.StopCPUProfile()
	}
	if *memprofile == "" {
		return 0
	}
	f, err := os.Create(*memprofile)
	if err != nil {
		return log.FErrf("can't open file for mem profile: %v", err)
	}
	defer f.Close()
	if err = pprof.WriteHeapProfile(f); err != nil {
		return log.FErrf("can't write mem profile: %v", err)
	}
	log.Infof("Wrote memory profile to %s", *memprofile)
	return 0
}

//go:build !windows
// +build !windows

package main_test

import (
	"os"
	"testing"

	"fortio.org/testscript"
	main "github.com/ldemailly/dfamatch"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"dfamatch": main.Main,
	}))
}

func TestDfamatchCli(t *testing.T) {
	testscript.Run(t, testscript.Params{Dir: "testdata"})
}

package main

import (
	"os"

	"github.com/golang/glog"
	"github.com/hdlc/hdlc/internal/maincmd"
	"github.com/mna/mainer"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	code := c.Main(os.Args, mainer.CurrentStdio())
	glog.Flush()
	os.Exit(int(code))
}

package main

import (
	"os"

	"k8s.io/klog/v2"

	"github.com/shapestone/shape-tabular/cmd/tabconv/app"
)

func main() {
	defer klog.Flush()

	cmd := app.NewTabconvCommand()
	if err := cmd.Execute(); err != nil {
		klog.ErrorS(err, "tabconv failed")
		klog.Flush()
		os.Exit(1)
	}
}

//mkreadme renders README.md from a template and project.toml:
//
//	mkreadme README.md.in > README.md
package main

import (
	"fmt"
	"os"

	"github.com/genice-dev/genice-cage/replacer"
)

func main() {
	tmplPath := "README.md.in"
	if len(os.Args) > 1 {
		tmplPath = os.Args[1]
	}
	metaPath := "project.toml"
	if len(os.Args) > 2 {
		metaPath = os.Args[2]
	}
	tmpl, err := os.ReadFile(tmplPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mkreadme:", err)
		os.Exit(1)
	}
	md, err := replacer.LoadMetadata(metaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mkreadme:", err)
		os.Exit(1)
	}
	out, err := replacer.Render(string(tmpl), md)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mkreadme:", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

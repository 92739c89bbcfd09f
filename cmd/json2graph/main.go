//json2graph rebuilds the cage graphs from the json output of genice-cage
//and counts how many topologically distinct cage shapes occur:
//
//	genice-cage CS1 -r 2,2,2 -f 'cage[json:-16:ring=5-6]' > cs1.json
//	json2graph cs1.json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/genice-dev/genice-cage/graphstat"
	"github.com/genice-dev/genice-cage/polyhed"
)

type cageInfo struct {
	Cages [][]int `json:"cages"`
	Rings [][]int `json:"rings"`
}

func run(r io.Reader) error {
	var info cageInfo
	if err := json.NewDecoder(r).Decode(&info); err != nil {
		return fmt.Errorf("not a cage json record: %w", err)
	}
	db := graphstat.New()
	count := make(map[int]int) //class id -> occurrences
	size := make(map[int]int)  //class id -> node count
	for _, cage := range info.Cages {
		g := polyhed.CageGraph(cage, info.Rings)
		id := db.Query(g)
		if id < 0 {
			id = db.Register()
			size[id] = g.Nodes().Len()
		}
		count[id]++
	}
	fmt.Printf("classes: %d\n", db.Len())
	ids := make([]int, 0, len(count))
	for id := range count {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if size[ids[i]] != size[ids[j]] {
			return size[ids[i]] < size[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids {
		fmt.Printf("size=%d count=%d\n", size[id], count[id])
	}
	return nil
}

func main() {
	in := os.Stdin
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "json2graph:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	if err := run(in); err != nil {
		fmt.Fprintln(os.Stderr, "json2graph:", err)
		os.Exit(1)
	}
}

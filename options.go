/*
 * options.go, part of genice-cage.
 *
 * Copyright 2024 Masakazu Matsumoto <vitroid@gmail.com>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//bounds of the range grammar: open-ended ranges are filled up to these.
const (
	minCageSize = 3
	maxCageSize = 20
	minRingSize = 3
	maxRingSize = 8
)

//IntSet is a set of cage or ring sizes.
type IntSet map[int]bool

//Has reports membership; a nil set has nothing.
func (s IntSet) Has(v int) bool { return s[v] }

//Max returns the largest member, or 0 for an empty set.
func (s IntSet) Max() int {
	m := 0
	for v := range s {
		if v > m {
			m = v
		}
	}
	return m
}

//Sorted returns the members in ascending order.
func (s IntSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func (s IntSet) String() string {
	parts := make([]string, 0, len(s))
	for _, v := range s.Sorted() {
		parts = append(parts, strconv.Itoa(v))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

//Options selects what to count and how to report it. The zero value is not
//usable; get one from ParseOptions, which also applies the defaults.
type Options struct {
	Sizes IntSet //cage sizes (face counts) to report
	Rings IntSet //ring sizes cages may be built of

	JSON    bool
	JSON2   bool
	Yaplot  bool
	Gromacs bool
	Python  bool
	Quad    bool
	Solid   bool

	DBPath    string //graphstat persistence for json2/python labels
	Histogram string //write a cage-size histogram PNG here
	Water     string //water model for the gromacs output, set by the CLI

	//Log, when not nil, receives the progress lines the emitters produce
	//(new cage types and the like).
	Log func(format string, v ...interface{})
}

func (o *Options) logf(format string, v ...interface{}) {
	if o.Log != nil {
		o.Log(format, v...)
	}
}

//ParseOptions parses the option payload of the cage format, already split
//on ":" (the CLI splits "cage[a:b:c]" and hands over [a b c]). Each item is
//a mode flag, a key=value pair, or a bare size list in the comma/hyphen
//range grammar ("12,14-16", "-16", "3-"). Defaults: cage sizes 3-16 and
//ring sizes 3-8 when not constrained; quad overrides both.
func ParseOptions(items []string) (*Options, error) {
	o := &Options{Sizes: IntSet{}}
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		key, val, iskv := strings.Cut(it, "=")
		if !iskv {
			if err := o.flagOrSizes(key); err != nil {
				return nil, errDecorate(err, "ParseOptions")
			}
			continue
		}
		var err error
		switch key {
		case "ring":
			o.Rings, err = parseRange(val, minRingSize, maxRingSize)
		case "maxring":
			var m int
			m, err = strconv.Atoi(val)
			if err != nil || m < minRingSize {
				return nil, &CError{fmt.Sprintf("bad maxring %q", val), []string{"ParseOptions"}}
			}
			o.Rings = IntSet{}
			for v := minRingSize; v <= m; v++ {
				o.Rings[v] = true
			}
		case "sizes":
			o.Sizes, err = parseRange(val, minCageSize, maxCageSize)
		case "db":
			o.DBPath = val
		case "histogram":
			o.Histogram = val
		default:
			return nil, &CError{fmt.Sprintf("unknown option %q", it), []string{"ParseOptions"}}
		}
		if err != nil {
			return nil, errDecorate(err, "ParseOptions")
		}
	}
	if len(o.Sizes) == 0 {
		for v := minCageSize; v <= 16; v++ {
			o.Sizes[v] = true
		}
	}
	if o.Rings == nil {
		o.Rings = IntSet{}
		for v := minRingSize; v <= maxRingSize; v++ {
			o.Rings[v] = true
		}
	}
	return o, nil
}

//a bare item is either one of the mode words or a size list.
func (o *Options) flagOrSizes(word string) error {
	switch word {
	case "json", "JSON":
		o.JSON = true
	case "json2":
		o.JSON2 = true
	case "yaplot":
		o.Yaplot = true
	case "gromacs":
		o.Gromacs = true
	case "python":
		o.Python = true
	case "solid":
		o.Solid = true
	case "quad":
		o.Quad = true
		o.Sizes = IntSet{12: true, 14: true, 15: true, 16: true}
		o.Rings = IntSet{5: true, 6: true}
	default:
		sizes, err := parseRange(word, minCageSize, maxCageSize)
		if err != nil {
			return err
		}
		o.Sizes = sizes
	}
	return nil
}

//parseRange expands the comma/hyphen grammar into a set. Open-ended ranges
//("-16", "3-") are filled from min or up to max.
func parseRange(s string, min, max int) (IntSet, error) {
	out := IntSet{}
	for _, item := range strings.Split(s, ",") {
		a, b, ranged := strings.Cut(item, "-")
		if !ranged {
			v, err := strconv.Atoi(item)
			if err != nil {
				return nil, &CError{fmt.Sprintf("bad size %q", item), []string{"parseRange"}}
			}
			out[v] = true
			continue
		}
		start, end := min, max
		var err error
		if a != "" {
			if start, err = strconv.Atoi(a); err != nil {
				return nil, &CError{fmt.Sprintf("bad range %q", item), []string{"parseRange"}}
			}
		}
		if b != "" {
			if end, err = strconv.Atoi(b); err != nil {
				return nil, &CError{fmt.Sprintf("bad range %q", item), []string{"parseRange"}}
			}
		}
		if end < start {
			return nil, &CError{fmt.Sprintf("empty range %q", item), []string{"parseRange"}}
		}
		for v := start; v <= end; v++ {
			out[v] = true
		}
	}
	return out, nil
}

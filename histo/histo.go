// Package histo provides 1-D histograms and a bar-chart renderer for
// them, used for cage-size distributions.
package histo

import (
	"encoding/json"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//Returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//if an ID for the histogram is given, it will be set. If not, the ID will
//be set to -1.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	d := new(Data)
	//copy the slice so nobody changes it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d
}

//ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

//Adds the given data point(s) to the histogram
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		for j, w := range D.dividers {
			//Values that are larger than the last divider are just omitted.
			if j == len(D.dividers)-1 {
				break
			}
			if w <= v && v < D.dividers[j+1] {
				D.histo[j]++
				break
			}
		}
	}
	D.total += len(point)
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Normalized returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

//normalizes or un-normalizes the histogram depending
//on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//Copies the dividers of the histogram
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 0, D.dividers)
}

func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	return floats.ScaleTo(d, 0, D.histo)
}

func (D *Data) View() []float64 {
	return D.histo
}

//Add adds the histograms a and b putting the result in the receiver.
func (D *Data) Add(a, b *Data) {
	D.dividers = a.CopyDividers(D.dividers)
	if len(a.dividers) != len(b.dividers) {
		panic("genice-cage/histo.Data.Add: Ill-formed histograms for addition")
	}
	if len(D.histo) < len(a.histo) {
		D.histo = make([]float64, len(a.histo))
	}
	for i, v := range a.dividers {
		if v != b.dividers[i] {
			panic("genice-cage/histo.Data.Add: Dividers must match in added histograms")
		}
		if i == len(a.dividers)-1 {
			break //histo has 1 less element than dividers
		}
		D.histo[i] = a.histo[i] + b.histo[i]
	}
	D.total = a.total + b.total
}

func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//ReHisto replaces the counts with a fresh histogram of rawdata over
//the given dividers.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	if rawdata != nil {
		sort.Float64s(rawdata)
		//stat.Histogram just panics instead of omitting the values
		//that are off limits, so we remove them here before the call.
		maxi := sort.SearchFloat64s(rawdata, dividers[len(dividers)-1])
		mini := sort.SearchFloat64s(rawdata, dividers[0])
		if maxi < len(rawdata) {
			rawdata = rawdata[:maxi]
		}
		if mini != 0 {
			rawdata = rawdata[mini:]
		}
	}
	D.total = len(rawdata) //as this could have been modified
	D.histo = stat.Histogram(nil, dividers, rawdata, nil)
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.dividers)-1)
	h := make([]string, 0, len(D.dividers)-1)
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		ID:         D.id,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	D.id = a.ID
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//Plot writes a PNG bar chart of the histogram to filename. Bars are
//labeled with the center of their bin.
func (D *Data) Plot(title, filename string) error {
	vals := make(plotter.Values, len(D.histo))
	copy(vals, D.histo)
	labels := make([]string, len(D.histo))
	for i := range labels {
		labels[i] = fmt.Sprintf("%g", (D.dividers[i]+D.dividers[i+1])/2)
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "count"
	if D.normalized {
		p.Y.Label.Text = "fraction"
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 60, G: 100, B: 180, A: 255}
	p.Add(bars)
	p.NominalX(labels...)
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0]
		if len(dest[0]) > N {
			d = dest[0][:N] //floats.ScaleTo wants both slices to _match_
		}
	} else {
		d = make([]float64, N)
	}
	return d
}

// Package seatmap describes the fixed cabin layout used across the fleet:
// a business section of rows 2-11 with window seats A and F, and an economy
// section of rows 20-30 with seats A through F.
package seatmap

import "fmt"

type Class string

const (
	ClassBusiness Class = "Business"
	ClassEconomy  Class = "Economy"
)

type Section struct {
	Class    Class
	FirstRow int
	LastRow  int
	Columns  []string
}

var sections = []Section{
	{Class: ClassBusiness, FirstRow: 2, LastRow: 11, Columns: []string{"A", "F"}},
	{Class: ClassEconomy, FirstRow: 20, LastRow: 30, Columns: []string{"A", "B", "C", "D", "E", "F"}},
}

// Sections returns the cabin layout in front-to-back order.
func Sections() []Section {
	return sections
}

// Seats lists every seat label of a section, row by row.
func (s Section) Seats() []string {
	labels := make([]string, 0, (s.LastRow-s.FirstRow+1)*len(s.Columns))
	for row := s.FirstRow; row <= s.LastRow; row++ {
		for _, col := range s.Columns {
			labels = append(labels, fmt.Sprintf("%d%s", row, col))
		}
	}
	return labels
}

// AllSeats lists every seat label in the cabin.
func AllSeats() []string {
	var labels []string
	for _, s := range sections {
		labels = append(labels, s.Seats()...)
	}
	return labels
}

// Contains reports whether label names a seat that exists in the cabin.
func Contains(label string) bool {
	row, col, ok := split(label)
	if !ok {
		return false
	}
	for _, s := range sections {
		if row < s.FirstRow || row > s.LastRow {
			continue
		}
		for _, c := range s.Columns {
			if c == col {
				return true
			}
		}
	}
	return false
}

// split parses a label like "20A" into row 20 and column "A".
func split(label string) (int, string, bool) {
	if len(label) < 2 {
		return 0, "", false
	}
	col := label[len(label)-1:]
	if col < "A" || col > "F" {
		return 0, "", false
	}
	row := 0
	for _, ch := range label[:len(label)-1] {
		if ch < '0' || ch > '9' {
			return 0, "", false
		}
		row = row*10 + int(ch-'0')
	}
	if row == 0 {
		return 0, "", false
	}
	return row, col, true
}

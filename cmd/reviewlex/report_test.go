package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/tsawler/reviewlex"
)

func TestWriteChart(t *testing.T) {
	w, err := newReportWriter(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	counts := []reviewlex.LabelCount{{Label: reviewlex.Positive, Count: 3}, {Label: reviewlex.Negative, Count: 1}}
	spec := &ChartSpec{Name: "overall", Kind: KindPie, Title: "Overall", X: "sentiment", Y: "count"}
	if err := w.writeChart(spec, counts, labelCountRows(counts), len(counts)); err != nil {
		t.Fatalf("writeChart: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(w.dir, "overall.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Title string                 `json:"title"`
		Kind  string                 `json:"kind"`
		Rows  []reviewlex.LabelCount `json:"rows"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Overall" || doc.Kind != KindPie || len(doc.Rows) != 2 || doc.Rows[0].Label != reviewlex.Positive {
		t.Errorf("got %+v", doc)
	}

	csv, err := os.ReadFile(filepath.Join(w.dir, "overall.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(csv); got != "sentiment,count\npositive,3\nnegative,1\n" {
		t.Errorf("csv = %q", got)
	}
}

func TestWriteChartEmpty(t *testing.T) {
	w, err := newReportWriter(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	spec := &ChartSpec{Name: "empty", Kind: KindHistogram}
	if err := w.writeChart(spec, []reviewlex.WordCount{}, []wordCountRow{}, 0); err != nil {
		t.Fatalf("writeChart: %v", err)
	}
	if _, err := os.Stat(filepath.Join(w.dir, "empty.json")); err != nil {
		t.Error(err)
	}
	if _, err := os.Stat(filepath.Join(w.dir, "empty.csv")); !os.IsNotExist(err) {
		t.Errorf("csv written for an empty table: %v", err)
	}

	if err := w.writeChart(nil, nil, nil, 0); !errors.Is(err, reviewlex.ErrConfiguration) {
		t.Errorf("nil spec: got %v", err)
	}
}

func TestFileID(t *testing.T) {
	tests := []struct {
		id, want string
	}{
		{"1001", "1001"},
		{"AB-7_x", "AB-7_x"},
		{"a/b c", "a_b_c"},
		{"../x", "_x"},
	}
	for _, tt := range tests {
		if got := fileID(tt.id); got != tt.want {
			t.Errorf("fileID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

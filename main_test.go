package main

import (
	"flag"
	"io"
	"testing"
)

func TestIncludeHeader(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		configured bool
		want       bool
	}{
		{"flag true overrides config false", []string{"-header=true"}, false, true},
		{"flag false overrides config true", []string{"-header=false"}, true, false},
		{"config false without flag", []string{"statement.pdf"}, false, false},
		{"config true without flag", []string{"-months=January_2024"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			header := fs.Bool("header", true, "")
			fs.String("months", "", "")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := includeHeader(fs, *header, tt.configured); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

package commands_test

import (
	"errors"
	"slices"
	"testing"

	"tasky/internal/commands"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []int64
		wantErr string
	}{
		{"single", []string{"3"}, []int64{3}, ""},
		{"several", []string{"1", "2"}, []int64{1, 2}, ""},
		{"comma separated", []string{"1,2", "3"}, []int64{1, 2, 3}, ""},
		{"hash prefix", []string{"#7"}, []int64{7}, ""},
		{"duplicates dropped", []string{"2", "1,2"}, []int64{2, 1}, ""},
		{"trailing comma", []string{"4,"}, []int64{4}, ""},
		{"zero", []string{"0"}, nil, "invalid id: 0"},
		{"negative", []string{"-1"}, nil, "invalid id: -1"},
		{"word", []string{"abc"}, nil, "invalid id: abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commands.ParseIDs(tt.args)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseIDs_Required(t *testing.T) {
	for _, args := range [][]string{nil, {""}, {","}} {
		if _, err := commands.ParseIDs(args); !errors.Is(err, commands.ErrIDRequired) {
			t.Errorf("ParseIDs(%q) error = %v, want ErrIDRequired", args, err)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := commands.ParseID([]string{"12"}); err != nil || id != 12 {
		t.Errorf("ParseID(12) = %d, %v", id, err)
	}
	if _, err := commands.ParseID([]string{"1", "2"}); err == nil || err.Error() != "too many arguments: 2" {
		t.Errorf("error = %v", err)
	}
	if _, err := commands.ParseID([]string{"1,2"}); err == nil || err.Error() != "expected one id: 1,2" {
		t.Errorf("error = %v", err)
	}
	if _, err := commands.ParseID(nil); !errors.Is(err, commands.ErrIDRequired) {
		t.Errorf("error = %v, want ErrIDRequired", err)
	}
}

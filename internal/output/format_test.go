package output_test

import (
	"bytes"
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"tasky/internal/output"
	"tasky/internal/service"
	"tasky/internal/testutil"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		task service.Task
		want string
	}{
		{
			name: "minimal",
			task: service.Task{ID: 3, Title: "Buy milk", Status: "todo"},
			want: "   3  todo      Buy milk\n",
		},
		{
			name: "tags and due",
			task: service.Task{ID: 12, Title: "Report", Status: "done", Tags: []string{"work", " ", "q2"}, DueDate: "2024-05-01", DueTime: "10:00"},
			want: "  12  done      Report  #work #q2  (due 2024-05-01 10:00)\n",
		},
		{
			name: "untitled",
			task: service.Task{ID: 1, Title: "  "},
			want: "   1  -         (untitled)\n",
		},
		{
			name: "title newlines",
			task: service.Task{ID: 2, Title: "a\nb", Status: "todo", DueDate: "2024-01-02"},
			want: "   2  todo      a b  (due 2024-01-02)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.FormatTask(&buf, tt.task)
			if buf.String() != tt.want {
				t.Errorf("got %q\nwant %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFormatTask_LongTitle(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTask(&buf, service.Task{ID: 1, Title: strings.Repeat("x", 80), Status: "todo"})

	line := strings.TrimSuffix(buf.String(), "\n")
	title := strings.TrimPrefix(line, "   1  todo      ")
	if !strings.HasSuffix(title, "…") {
		t.Errorf("expected truncated title, got %q", title)
	}
	if w := xansi.StringWidth(title); w > output.MaxTitleWidth {
		t.Errorf("title width = %d, want <= %d", w, output.MaxTitleWidth)
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, service.Task{
		ID:        7,
		Title:     "Write report",
		ShortDesc: "quarterly",
		LongDesc:  "Collect numbers.\nSend to Bea.\n",
		Priority:  "high",
		Status:    "todo",
		DueDate:   "2024-05-01",
		Tags:      []string{"work"},
	})
	testutil.Golden(t, "task_detail", buf.Bytes())
}

func TestFormatCategory(t *testing.T) {
	one, three := 1, 3
	tests := []struct {
		cat  service.Category
		want string
	}{
		{service.Category{ID: 1, Name: "Work", Color: "#ff0000", Count: &three}, "   1  ● Work  #ff0000  (3 tasks)\n"},
		{service.Category{ID: 2, Name: "Home", Color: "#00ff00", Count: &one}, "   2  ● Home  #00ff00  (1 task)\n"},
		{service.Category{ID: 3, Name: "Misc"}, "   3  ● Misc  -\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		output.FormatCategory(&buf, tt.cat)
		if buf.String() != tt.want {
			t.Errorf("got %q\nwant %q", buf.String(), tt.want)
		}
	}
}

func TestFormatProfile(t *testing.T) {
	var buf bytes.Buffer
	output.FormatProfile(&buf, service.UserProfile{Name: "Ann", Email: "a@b.com"})
	output.FormatProfile(&buf, service.UserProfile{Name: "Bea"})
	if want := "Ann <a@b.com>\nBea\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

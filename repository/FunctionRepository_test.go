package repository

import "testing"

func TestGeneratePartMark(t *testing.T) {
	tests := []struct {
		prefix      string
		designation string
		sequence    int
		want        string
	}{
		{"PM", "B-01", 1, "PM/B-01/0001"},
		{"cl", "B-02", 42, "CL/B-02/0042"},
		{"", "B-03", 7, "PM/B-03/0007"},
		{"  pm ", "B-01", 1234, "PM/B-01/1234"},
	}
	for _, tt := range tests {
		got := GeneratePartMark(tt.prefix, tt.designation, tt.sequence)
		if got != tt.want {
			t.Fatalf("GeneratePartMark(%q, %q, %d) = %q, want %q",
				tt.prefix, tt.designation, tt.sequence, got, tt.want)
		}
	}
}

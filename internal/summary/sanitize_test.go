package summary

import "testing"

func TestSanitizeRemovesNotes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "inline note",
			in:   "Rates held steady. (Note: based only on the snippet.)",
			want: "Rates held steady.",
		},
		{
			name: "bracketed disclaimer",
			in:   "Markets rallied [Disclaimer: not financial advice] on the news.",
			want: "Markets rallied on the news.",
		},
		{
			name: "full note line",
			in:   "First paragraph.\nNote: I cannot verify this.\nSecond paragraph.",
			want: "First paragraph.\nSecond paragraph.",
		},
		{
			name: "code fence",
			in:   "```text\nThe actual answer.\n```",
			want: "The actual answer.",
		},
		{
			name: "clean text untouched",
			in:   "What happened - the bank held rates.\n\nWhy it matters - borrowing costs stay put.",
			want: "What happened - the bank held rates.\n\nWhy it matters - borrowing costs stay put.",
		},
		{
			name: "note mentioned mid-sentence survives",
			in:   "Analysts note that inflation cooled.",
			want: "Analysts note that inflation cooled.",
		},
	}

	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("%s: Sanitize(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestSanitizeCollapsesBlankLines(t *testing.T) {
	in := "Top.\nNote: removed.\n\nNote: also removed.\n\nBottom."
	want := "Top.\n\nBottom."
	if got := Sanitize(in); got != want {
		t.Errorf("Sanitize(%q) = %q, want %q", in, got, want)
	}
}

package render

import "testing"

func TestWriterIndentation(t *testing.T) {
	w := NewWriter()
	w.Line("area Test [1]")
	w.Line()
	w.Line("service S [1] {")
	w.IndentPush()
	w.Line("capability [1] {")
	w.IndentPush()
	w.WriteString("send ping [1] ")
	w.WriteString("()")
	w.Newline()
	w.IndentPop()
	w.Line("}")
	w.IndentPop()
	w.Line("}")

	want := "area Test [1]\n\nservice S [1] {\n\tcapability [1] {\n\t\tsend ping [1] ()\n\t}\n}\n"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("writer output mismatch:\nwant %q\ngot  %q", want, got)
	}
	if w.Level() != 0 {
		t.Fatalf("indent level must return to zero, got %d", w.Level())
	}
}

func TestWriterIndentOnlyAtLineStart(t *testing.T) {
	w := NewWriter()
	w.IndentPush()
	w.WriteString("a")
	w.WriteString("b")
	w.Newline()
	w.WriteString("c")

	want := "\tab\n\tc"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWriterIndentPopNeverNegative(t *testing.T) {
	w := NewWriter()
	w.IndentPop()
	w.IndentPop()
	w.Line("x")
	if got := string(w.Bytes()); got != "x\n" {
		t.Fatalf("want %q, got %q", "x\n", got)
	}
}

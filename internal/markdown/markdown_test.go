package markdown

import (
	"strings"
	"testing"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

func TestRender_Blank(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   "} {
		if out := Render(40, 2, []byte(input)); out != nil {
			t.Errorf("Render(%q) = %q, want nil", input, out)
		}
	}
}

func TestRender_IndentsEveryLine(t *testing.T) {
	out := string(Render(40, 4, []byte("first paragraph\n\nsecond paragraph")))
	if !strings.Contains(out, "first paragraph") || !strings.Contains(out, "second paragraph") {
		t.Fatalf("expected both paragraphs, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "    ") {
			t.Errorf("expected indented line, got %q", line)
		}
	}
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	const renderWidth = 20

	rendererMu.Lock()
	prev, hadPrev := renderers[renderWidth]
	renderers[renderWidth] = panicRenderer{}
	rendererMu.Unlock()

	defer func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[renderWidth] = prev
		} else {
			delete(renderers, renderWidth)
		}
		rendererMu.Unlock()
	}()

	out := SafeRender(renderWidth, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

package layout

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/i3keep/i3keep/internal/model"
)

func strp(s string) *string { return &s }

func floatp(f float64) *float64 { return &f }

// goldenTree is a normalized workspace holding one splitv container with two
// terminal windows, the shape of a typical two-pane terminal workspace.
func goldenTree() model.Node {
	return model.Node{
		Kind:               model.KindWorkspace,
		Layout:             "splith",
		CurrentBorderWidth: -1,
		Nodes: []model.Node{
			{
				Kind:               model.KindCon,
				Layout:             "splitv",
				Border:             "normal",
				CurrentBorderWidth: -1,
				Floating:           "auto_off",
				Percent:            floatp(0.5),
				Nodes: []model.Node{
					{
						Kind:               model.KindCon,
						Name:               strp("urxvt"),
						Border:             "normal",
						CurrentBorderWidth: 2,
						Floating:           "auto_off",
						Percent:            floatp(0.5),
						Geometry:           model.Rect{Width: 1344, Height: 868},
						WindowProperties:   model.WindowProperties{"class": "URxvt", "instance": "urxvt"},
					},
					{
						Kind:               model.KindCon,
						Name:               strp("vim"),
						Border:             "pixel",
						CurrentBorderWidth: -1,
						Percent:            floatp(0.5),
						WindowProperties:   model.WindowProperties{"class": "URxvt", "title": "vim"},
					},
				},
			},
		},
	}
}

const goldenDoc = `// vim:ts=4:sw=4:et
{
    // splitv split container with 2 children
    "border": "normal",
    "floating": "auto_off",
    "layout": "splitv",
    "percent": 0.5,
    "type": "con",
    "nodes": [
        {
            "border": "normal",
            "current_border_width": 2,
            "floating": "auto_off",
            "geometry": {
                "height": 868,
                "width": 1344,
                "x": 0,
                "y": 0
            },
            "name": "urxvt",
            "percent": 0.5,
            "swallows": [
                {
                    // "class": "^URxvt$",
                    // "instance": "^urxvt$"
                }
            ],
            "type": "con"
        },
        {
            "border": "pixel",
            "name": "vim",
            "percent": 0.5,
            "swallows": [
                {
                    // "class": "^URxvt$",
                    // "title": "^vim$"
                }
            ],
            "type": "con"
        }
    ]
}

`

func TestRender_Golden(t *testing.T) {
	got := Render(goldenTree(), Options{})
	if got != goldenDoc {
		t.Errorf("rendered document differs from golden.\ngot:\n%s\nwant:\n%s", got, goldenDoc)
	}
}

func TestRender_Deterministic(t *testing.T) {
	tree := goldenTree()
	first := Render(tree, Options{})
	for i := 0; i < 5; i++ {
		if got := Render(tree, Options{}); got != first {
			t.Fatalf("render %d differs from the first render", i+1)
		}
	}
}

func TestRender_EscapesRegexMetacharacters(t *testing.T) {
	tree := model.Node{
		Kind: model.KindWorkspace,
		Nodes: []model.Node{
			{
				Kind:               model.KindCon,
				CurrentBorderWidth: -1,
				WindowProperties:   model.WindowProperties{"class": "Foo (bar)"},
			},
		},
	}
	got := Render(tree, Options{})
	want := `// "class": "^Foo \\(bar\\)$"`
	if !strings.Contains(got, want) {
		t.Errorf("document missing escaped pattern %s:\n%s", want, got)
	}
}

func TestRender_CommaBetweenChildArrays(t *testing.T) {
	tree := model.Node{
		Kind: model.KindWorkspace,
		Nodes: []model.Node{
			{
				Kind:               model.KindCon,
				Layout:             "splith",
				CurrentBorderWidth: -1,
				Nodes: []model.Node{
					{Kind: model.KindCon, CurrentBorderWidth: -1},
				},
				FloatingNodes: []model.Node{
					{
						Kind:               model.KindFloatingCon,
						Layout:             "splith",
						CurrentBorderWidth: -1,
						Rect:               model.Rect{X: 10, Y: 20, Width: 640, Height: 480},
						Nodes:              []model.Node{{Kind: model.KindCon, CurrentBorderWidth: -1}},
					},
				},
			},
		},
	}
	got := Render(tree, Options{})

	// The nodes array takes a comma because floating_nodes follows; the
	// floating_nodes array is final and takes none.
	if !strings.Contains(got, "    ],\n    \"floating_nodes\": [\n") {
		t.Errorf("nodes array should close with a comma before floating_nodes:\n%s", got)
	}
	if strings.Contains(got, "]\n    \"floating_nodes\"") {
		t.Errorf("missing comma between child arrays:\n%s", got)
	}
	if !strings.HasSuffix(got, "    ]\n}\n\n") {
		t.Errorf("final child array must not take a comma:\n%s", got)
	}
}

func TestRender_TopLevelBlocks(t *testing.T) {
	tree := model.Node{
		Kind: model.KindWorkspace,
		Nodes: []model.Node{
			{Kind: model.KindCon, Name: strp("a"), CurrentBorderWidth: -1},
			{Kind: model.KindCon, Name: strp("b"), CurrentBorderWidth: -1},
		},
	}
	got := Render(tree, Options{})

	if !strings.HasPrefix(got, Header+"\n{\n") {
		t.Errorf("document must open with the header line:\n%s", got)
	}
	// Top-level blocks are standalone: blank-line separated, no trailing
	// comma on the closing brace.
	if !strings.Contains(got, "}\n\n{") {
		t.Errorf("top-level blocks must be blank-line separated:\n%s", got)
	}
	if strings.Contains(got, "},\n") {
		t.Errorf("top-level blocks must not be comma separated:\n%s", got)
	}
}

func TestRender_EmptySelection(t *testing.T) {
	got := Render(model.Node{Kind: model.KindWorkspace, CurrentBorderWidth: -1}, Options{})
	if got != Header+"\n" {
		t.Errorf("empty selection should render only the header, got:\n%q", got)
	}
}

func TestRender_SwallowKeyFilter(t *testing.T) {
	tree := model.Node{
		Kind: model.KindWorkspace,
		Nodes: []model.Node{
			{
				Kind:               model.KindCon,
				CurrentBorderWidth: -1,
				WindowProperties: model.WindowProperties{
					"class":    "URxvt",
					"instance": "urxvt",
					"title":    "mutt",
				},
			},
		},
	}

	got := Render(tree, Options{SwallowKeys: []string{"class"}})
	if !strings.Contains(got, `// "class"`) {
		t.Errorf("class criterion missing:\n%s", got)
	}
	if strings.Contains(got, `"instance"`) || strings.Contains(got, `"title"`) {
		t.Errorf("filtered criteria leaked into the document:\n%s", got)
	}

	// Keys are emitted in lexicographic order regardless of option order.
	got = Render(tree, Options{SwallowKeys: []string{"title", "class"}})
	classAt := strings.Index(got, `"class"`)
	titleAt := strings.Index(got, `"title"`)
	if classAt == -1 || titleAt == -1 || classAt > titleAt {
		t.Errorf("criteria out of lexicographic order:\n%s", got)
	}
}

func TestRender_NoMatchingSwallowKeys(t *testing.T) {
	tree := model.Node{
		Kind: model.KindWorkspace,
		Nodes: []model.Node{
			{
				Kind:               model.KindCon,
				CurrentBorderWidth: -1,
				WindowProperties:   model.WindowProperties{"class": "URxvt"},
			},
		},
	}
	got := Render(tree, Options{SwallowKeys: []string{"title"}})
	if strings.Contains(got, "swallows") {
		t.Errorf("no swallows block expected when no attribute matches:\n%s", got)
	}
}

func TestRender_MarksAndFullscreen(t *testing.T) {
	tree := model.Node{
		Kind: model.KindWorkspace,
		Nodes: []model.Node{
			{
				Kind:               model.KindCon,
				CurrentBorderWidth: -1,
				FullscreenMode:     1,
				Marks:              []string{"scratch", "editor"},
			},
		},
	}
	got := Render(tree, Options{})

	wantMarks := "    \"marks\": [\n        \"scratch\",\n        \"editor\"\n    ],\n"
	if !strings.Contains(got, wantMarks) {
		t.Errorf("marks array missing or malformed:\n%s", got)
	}
	if !strings.Contains(got, `"fullscreen_mode": 1,`) {
		t.Errorf("non-zero fullscreen_mode missing:\n%s", got)
	}

	// The zero default never appears.
	got = Render(goldenTree(), Options{})
	if strings.Contains(got, "fullscreen_mode") {
		t.Errorf("default fullscreen_mode must be elided:\n%s", got)
	}
}

// stripComments removes every comment line, turning the document into plain
// JSON blocks.
func stripComments(doc string) string {
	var out []string
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func TestRender_RoundTripsAsJSON(t *testing.T) {
	doc := Render(goldenTree(), Options{})
	blocks := strings.Split(stripComments(doc), "\n\n")

	parsed := 0
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var v map[string]any
		if err := json.Unmarshal([]byte(block), &v); err != nil {
			t.Fatalf("comment-stripped block is not valid JSON: %v\n%s", err, block)
		}
		if v["type"] != "con" {
			t.Errorf("block type = %v, want con", v["type"])
		}
		// With the criteria commented out, swallows decodes as one empty
		// placeholder object.
		nodes := v["nodes"].([]any)
		first := nodes[0].(map[string]any)
		swallows := first["swallows"].([]any)
		if len(swallows) != 1 || len(swallows[0].(map[string]any)) != 0 {
			t.Errorf("stripped swallows should be a single empty object, got %v", swallows)
		}
		parsed++
	}
	if parsed != 1 {
		t.Fatalf("expected 1 top-level block, parsed %d", parsed)
	}
}

func TestActivateSwallows(t *testing.T) {
	doc := Render(goldenTree(), Options{})
	activated := ActivateSwallows(doc)

	if !strings.Contains(activated, `                    "class": "^URxvt$",`) {
		t.Errorf("class criterion should be uncommented in place:\n%s", activated)
	}
	if strings.Contains(activated, `// "class"`) {
		t.Errorf("commented criteria remain after activation:\n%s", activated)
	}
	if !strings.HasPrefix(activated, Header+"\n") {
		t.Error("header comment must survive activation")
	}
	if !strings.Contains(activated, "// splitv split container with 2 children") {
		t.Error("container summary comments must survive activation")
	}

	// The activated document parses as JSON once the remaining comments go.
	blocks := strings.Split(stripComments(activated), "\n\n")
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var v map[string]any
		if err := json.Unmarshal([]byte(block), &v); err != nil {
			t.Fatalf("activated block is not valid JSON: %v\n%s", err, block)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		node model.Node
		want string
	}{
		{
			"split container",
			model.Node{Kind: model.KindCon, Layout: "splitv", Nodes: []model.Node{{}, {}}},
			"splitv split container with 2 children",
		},
		{
			"workspace",
			model.Node{Kind: model.KindWorkspace, Nodes: []model.Node{{}, {}, {}}},
			"workspace with 3 children",
		},
		{
			"empty workspace",
			model.Node{Kind: model.KindWorkspace},
			"workspace with 0 children",
		},
		{
			"floating container",
			model.Node{Kind: model.KindFloatingCon, Nodes: []model.Node{{}}},
			"floating_con with 1 children",
		},
		{"leaf", model.Node{Kind: model.KindCon}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.node); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

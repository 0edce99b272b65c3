package css

import "testing"

func TestProperties_Set(t *testing.T) {
	p := make(Properties)
	p.Set("color", "red")
	p.Set("color", "blue")
	p.Set("margin", "")
	p.Set("", "x")

	if len(p) != 1 {
		t.Fatalf("expected single property, got %v", p)
	}
	if v, _ := p.Get("color"); v != "blue" {
		t.Errorf("color = %q, want blue", v)
	}
}

func TestProperties_Inline(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
		want  string
	}{
		{"nil", nil, ""},
		{"empty", Properties{}, ""},
		{"single", Properties{"color": "red"}, "color:red;"},
		{"sorted", Properties{"width": "1pt", "border-collapse": "collapse", "margin-left": "0"}, "border-collapse:collapse;margin-left:0;width:1pt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.props.Inline(); got != tt.want {
				t.Errorf("Inline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProperties_Delta(t *testing.T) {
	p := Properties{"color": "red", "font-size": "12pt", "white-space": "pre-wrap"}
	base := Properties{"color": "red", "font-size": "10pt", "text-align": "center"}

	got := p.Delta(base)
	want := Properties{"font-size": "12pt", "white-space": "pre-wrap"}
	if !got.Equal(want) {
		t.Errorf("Delta() = %v, want %v", got, want)
	}

	// flattening delta over base gives back the original values
	flat := base.Clone()
	flat.Merge(got)
	for k, v := range p {
		if flat[k] != v {
			t.Errorf("flattened %s = %q, want %q", k, flat[k], v)
		}
	}
}

func TestProperties_Clone(t *testing.T) {
	var p Properties
	if p.Clone() != nil {
		t.Error("clone of nil must be nil")
	}
	p = Properties{"a": "b"}
	c := p.Clone()
	c["a"] = "c"
	if p["a"] != "b" {
		t.Error("clone shares storage with original")
	}
}

func TestClassName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Heading1", "Heading1"},
		{"Table Grid", "Table_Grid"},
		{"1Style", "_1Style"},
		{"-x", "_-x"},
		{"a.b", "a_b"},
		{"Заголовок", "Заголовок"},
	}
	for _, tt := range tests {
		if got := ClassName(tt.in); got != tt.want {
			t.Errorf("ClassName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

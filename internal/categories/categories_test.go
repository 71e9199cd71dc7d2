package categories

import "testing"

func TestLabelResolvesKnownCategories(t *testing.T) {
	cases := map[string]string{
		CSharp:         "C# & .NET Core",
		React:          "React",
		JavaScript:     "JavaScript",
		WebDevelopment: "Web Development",
	}
	for id, want := range cases {
		if got := Label(id); got != want {
			t.Fatalf("Label(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestLabelFallsBackToWebDevelopment(t *testing.T) {
	for _, id := range []string{"", "golang", "React", "web development"} {
		if got := Label(id); got != "Web Development" {
			t.Fatalf("Label(%q) = %q, want fallback", id, got)
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	list := List()
	list[0].Label = "mutated"
	if Label(CSharp) != "C# & .NET Core" {
		t.Fatal("expected table to be immutable through List")
	}
}

func TestWithAllPrependsFilterEntry(t *testing.T) {
	list := WithAll()
	if len(list) != len(table)+1 || list[0].ID != All {
		t.Fatalf("unexpected list %v", list)
	}
}

func TestIsAll(t *testing.T) {
	for _, id := range []string{"", " ", "all", "ALL"} {
		if !IsAll(id) {
			t.Fatalf("expected %q to mean all", id)
		}
	}
	if IsAll(React) {
		t.Fatal("expected react to be a real filter")
	}
}

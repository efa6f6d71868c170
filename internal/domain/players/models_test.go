package players

import (
	"reflect"
	"testing"
)

func TestPlayerJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	playerType := reflect.TypeOf(Player{})
	fields := []fieldCheck{
		{"Year", "year"},
		{"Name", "name"},
		{"NameKana", "nameKana"},
		{"UniformName", "uniformName"},
		{"NumberDisp", "numberDisp"},
		{"NumberCalc", "numberCalc"},
		{"Role", "role"},
		{"DateOfBirth", "dateOfBirth,omitempty"},
		{"HeightCM", "heightCm,omitempty"},
		{"WeightKG", "weightKg,omitempty"},
	}
	for _, fc := range fields {
		f, ok := playerType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestRoleFilterAllows(t *testing.T) {
	cases := []struct {
		filter RoleFilter
		role   Role
		want   bool
	}{
		{FilterRoster, RoleRoster, true},
		{FilterRoster, RoleCoach, false},
		{FilterRoster, RoleTraining, false},
		{FilterAll, RoleRoster, true},
		{FilterAll, RoleCoach, true},
		{FilterAll, RoleTraining, true},
		{FilterAll, Role("umpire"), false},
		{RoleFilter("bogus"), RoleRoster, false},
	}
	for _, tc := range cases {
		if got := tc.filter.Allows(tc.role); got != tc.want {
			t.Fatalf("%s.Allows(%s) = %v, want %v", tc.filter, tc.role, got, tc.want)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	items := []Player{
		{NumberDisp: "1", Role: RoleRoster},
		{NumberDisp: "80", Role: RoleCoach},
		{NumberDisp: "122", Role: RoleTraining},
		{NumberDisp: "00", Role: RoleRoster},
	}
	got := Filter(items, FilterRoster)
	if len(got) != 2 || got[0].NumberDisp != "1" || got[1].NumberDisp != "00" {
		t.Fatalf("unexpected roster filter result %+v", got)
	}
	if len(Filter(items, FilterAll)) != 4 {
		t.Fatalf("expected all players to pass the all filter")
	}
}

func TestFormatName(t *testing.T) {
	p := Player{Name: "山田哲人", NameKana: "やまだてつと"}
	if got := FormatName(p, DisplayKanji); got != "山田哲人" {
		t.Fatalf("kanji: got %q", got)
	}
	if got := FormatName(p, DisplayKana); got != "やまだてつと" {
		t.Fatalf("kana: got %q", got)
	}
	if got := FormatName(p, DisplayBoth); got != "山田哲人(やまだてつと)" {
		t.Fatalf("both: got %q", got)
	}
	noKana := Player{Name: "村上宗隆"}
	if got := FormatName(noKana, DisplayKana); got != "村上宗隆" {
		t.Fatalf("expected kanji fallback without kana, got %q", got)
	}
}

func TestParseNameDisplay(t *testing.T) {
	if d, ok := ParseNameDisplay("kana"); !ok || d != DisplayKana {
		t.Fatalf("expected kana, got %s %v", d, ok)
	}
	if d, ok := ParseNameDisplay("romaji"); ok || d != DefaultNameDisplay {
		t.Fatalf("expected default on unknown value, got %s %v", d, ok)
	}
}
